package service

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	projectdto "scopdash/internal/modules/project/dto"
	"scopdash/internal/modules/transfer/domain"
	apperrors "scopdash/internal/platform/errors"
)

// Encode writes the dashboard as an indented backup envelope stamped at now.
func Encode(snap projectdto.DashboardOutput, now time.Time) ([]byte, error) {
	engagement := float64(snap.Metrics.EmployeeEngagement)
	secured := snap.Metrics.SecuredFinancing
	total := snap.Metrics.TotalFinancing
	name, editor, recipients, date := snap.Project.Name, snap.Project.Editor, snap.Project.Recipients, snap.Project.Date

	docs := make([]domain.Document, 0, len(snap.Documents))
	for _, d := range snap.Documents {
		docs = append(docs, domain.Document{ID: d.ID, Title: d.Title, Status: d.Status})
	}
	steps := make([]domain.NextStep, 0, len(snap.NextSteps))
	for _, s := range snap.NextSteps {
		steps = append(steps, domain.NextStep{ID: s.ID, Task: s.Task, Deadline: s.Deadline, Completed: s.Completed})
	}
	strengths := nonNil(snap.Analysis.Strengths)
	vigilance := nonNil(snap.Analysis.VigilancePoints)

	env := domain.Envelope{
		Version:   domain.FormatVersion,
		Timestamp: now.UTC(),
		Data: &domain.Data{
			KeyMetrics:  &domain.KeyMetrics{EmployeeEngagement: &engagement, SecuredFinancing: &secured, TotalFinancing: &total},
			ProjectData: &domain.ProjectData{ProjectName: &name, Editor: &editor, Date: &date, Recipients: &recipients},
			Documents:   &docs,
			Analysis:    &domain.Analysis{Strengths: &strengths, VigilancePoints: &vigilance},
			NextSteps:   &steps,
		},
	}
	payload, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return append(payload, '\n'), nil
}

// Decode parses a backup envelope. Malformed JSON and a missing or null data
// object fail with ErrInvalidFormat. Unknown keys are ignored.
func Decode(payload []byte) (domain.Envelope, error) {
	env := domain.Envelope{}
	// Unmarshal rejects trailing data after the envelope.
	if err := json.Unmarshal(payload, &env); err != nil {
		return domain.Envelope{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidFormat, err)
	}
	if env.Data == nil {
		return domain.Envelope{}, fmt.Errorf("%w: missing data", apperrors.ErrInvalidFormat)
	}
	return env, nil
}

// ToImport maps the present sections of data to a project import.
func ToImport(data domain.Data) (projectdto.ImportInput, error) {
	in := projectdto.ImportInput{}
	if m := data.KeyMetrics; m != nil {
		metrics := projectdto.UpdateMetricsInput{SecuredFinancing: m.SecuredFinancing, TotalFinancing: m.TotalFinancing}
		if m.EmployeeEngagement != nil {
			v := *m.EmployeeEngagement
			if v != math.Trunc(v) {
				return projectdto.ImportInput{}, fmt.Errorf("%w: employeeEngagement must be a whole number", apperrors.ErrInvalidFormat)
			}
			n := int(v)
			metrics.EmployeeEngagement = &n
		}
		in.Metrics = &metrics
	}
	if p := data.ProjectData; p != nil {
		in.Project = &projectdto.UpdateProjectInput{Name: p.ProjectName, Editor: p.Editor, Date: p.Date, Recipients: p.Recipients}
	}
	if data.Documents != nil {
		docs := make([]projectdto.DocumentInput, 0, len(*data.Documents))
		for _, d := range *data.Documents {
			docs = append(docs, projectdto.DocumentInput{ID: d.ID, Title: d.Title, Status: d.Status})
		}
		in.Documents = &docs
	}
	if a := data.Analysis; a != nil {
		in.Analysis = &projectdto.UpdateAnalysisInput{Strengths: a.Strengths, VigilancePoints: a.VigilancePoints}
	}
	if data.NextSteps != nil {
		steps := make([]projectdto.NextStepInput, 0, len(*data.NextSteps))
		for _, s := range *data.NextSteps {
			steps = append(steps, projectdto.NextStepInput{Task: s.Task, Deadline: s.Deadline, Completed: s.Completed})
		}
		in.NextSteps = &steps
	}
	return in, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
