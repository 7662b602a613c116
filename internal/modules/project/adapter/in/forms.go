package in

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"scopdash/internal/modules/project/dto"
	projectin "scopdash/internal/modules/project/port/in"
	apperrors "scopdash/internal/platform/errors"
	"scopdash/internal/platform/form"
)

// Edit targets accepted by FormFor.
const (
	TargetProject   = "project"
	TargetMetrics   = "metrics"
	TargetAnalysis  = "analysis"
	TargetNextSteps = "next-steps"
	targetDocument  = "document:"
)

const dateLayout = "2006-01-02"

// Targets lists the fixed edit targets; documents are addressed as
// "document:<id>".
var Targets = []string{TargetProject, TargetMetrics, TargetAnalysis, TargetNextSteps}

func DocumentTarget(id int) string {
	return targetDocument + strconv.Itoa(id)
}

// FormFor builds the edit form for target, prefilled from the current
// dashboard. The returned save callbacks write through uc.
func FormFor(ctx context.Context, uc projectin.Usecase, target string) (form.Config, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return form.Config{}, err
	}
	switch {
	case target == TargetProject:
		return projectForm(uc, snap), nil
	case target == TargetMetrics:
		return metricsForm(uc, snap), nil
	case target == TargetAnalysis:
		return analysisForm(uc, snap), nil
	case target == TargetNextSteps:
		return nextStepsForm(uc, snap), nil
	case strings.HasPrefix(target, targetDocument):
		id, err := strconv.Atoi(strings.TrimPrefix(target, targetDocument))
		if err != nil {
			return form.Config{}, fmt.Errorf("%w: bad document id in %q", apperrors.ErrInvalidInput, target)
		}
		return documentForm(uc, snap, id)
	default:
		return form.Config{}, fmt.Errorf("%w: unknown edit target %q", apperrors.ErrInvalidInput, target)
	}
}

func projectForm(uc projectin.Usecase, snap dto.DashboardOutput) form.Config {
	return form.Config{
		Title:       "Project information",
		Description: "Report header shown on every page",
		Fields: []form.Field{
			{Key: "projectName", Label: "Project name", Kind: form.KindText, Required: true},
			{Key: "editor", Label: "Editor", Kind: form.KindText, Required: true},
			{Key: "date", Label: "Date", Kind: form.KindText, Placeholder: dateLayout, Required: true, Validate: func(v string) error {
				if _, err := time.Parse(dateLayout, strings.TrimSpace(v)); err != nil {
					return fmt.Errorf("Date must look like %s", dateLayout)
				}
				return nil
			}},
			{Key: "recipients", Label: "Recipients", Kind: form.KindTextarea},
		},
		Initial: form.Values{
			"projectName": snap.Project.Name,
			"editor":      snap.Project.Editor,
			"date":        snap.Project.Date.Format(dateLayout),
			"recipients":  snap.Project.Recipients,
		},
		Save: func(ctx context.Context, v form.Values) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			date, err := time.Parse(dateLayout, strings.TrimSpace(v["date"]))
			if err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
			}
			name := strings.TrimSpace(v["projectName"])
			editor := strings.TrimSpace(v["editor"])
			recipients := strings.TrimSpace(v["recipients"])
			return uc.UpdateProject(ctx, dto.UpdateProjectInput{Name: &name, Editor: &editor, Date: &date, Recipients: &recipients})
		},
	}
}

func metricsForm(uc projectin.Usecase, snap dto.DashboardOutput) form.Config {
	m := snap.Metrics
	return form.Config{
		Title:       "Key metrics",
		Description: fmt.Sprintf("Steps completed (%d/%d) follow the document checklist", m.StepsCompleted, m.TotalSteps),
		Fields: []form.Field{
			{Key: dto.KeyEngagement, Label: "Employee engagement (%)", Kind: form.KindNumber, Required: true, Min: form.Bound(0), Max: form.Bound(100), Validate: wholeNumber("Employee engagement (%)")},
			{Key: dto.KeySecured, Label: "Secured financing (EUR)", Kind: form.KindCurrency, Required: true},
			{Key: dto.KeyTotal, Label: "Total financing (EUR)", Kind: form.KindCurrency, Required: true},
		},
		Initial: form.Values{
			dto.KeyEngagement: strconv.Itoa(m.EmployeeEngagement),
			dto.KeySecured:    strconv.FormatFloat(m.SecuredFinancing, 'f', -1, 64),
			dto.KeyTotal:      strconv.FormatFloat(m.TotalFinancing, 'f', -1, 64),
		},
		Save: func(ctx context.Context, v form.Values) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := securedWithinTotal(v); err != nil {
				return err
			}
			return uc.UpdateMetricsFromValues(ctx, v)
		},
	}
}

// wholeNumber rejects fractional input on a number field. Blank and
// non-numeric values are left to the built-in checks.
func wholeNumber(label string) func(string) error {
	return func(v string) error {
		n, err := form.ParseNumber(v)
		if err != nil || strings.TrimSpace(v) == "" {
			return nil
		}
		if n != math.Trunc(n) {
			return fmt.Errorf("%s must be a whole number", label)
		}
		return nil
	}
}

func securedWithinTotal(v form.Values) error {
	secured, err := form.ParseNumber(v[dto.KeySecured])
	if err != nil {
		return fmt.Errorf("%w: secured financing: %v", apperrors.ErrInvalidInput, err)
	}
	total, err := form.ParseNumber(v[dto.KeyTotal])
	if err != nil {
		return fmt.Errorf("%w: total financing: %v", apperrors.ErrInvalidInput, err)
	}
	if secured > total {
		return fmt.Errorf("secured financing cannot exceed total financing")
	}
	return nil
}

func analysisForm(uc projectin.Usecase, snap dto.DashboardOutput) form.Config {
	return form.Config{
		Title:       "Analysis",
		Description: "One item per line",
		Fields: []form.Field{
			{Key: "strengths", Label: "Strengths", Kind: form.KindTextarea},
			{Key: "vigilancePoints", Label: "Points of vigilance", Kind: form.KindTextarea},
		},
		Initial: form.Values{
			"strengths":       strings.Join(snap.Analysis.Strengths, "\n"),
			"vigilancePoints": strings.Join(snap.Analysis.VigilancePoints, "\n"),
		},
		Save: func(ctx context.Context, v form.Values) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			strengths := SplitLines(v["strengths"])
			vigilance := SplitLines(v["vigilancePoints"])
			return uc.UpdateAnalysis(ctx, dto.UpdateAnalysisInput{Strengths: &strengths, VigilancePoints: &vigilance})
		},
	}
}

func nextStepsForm(uc projectin.Usecase, snap dto.DashboardOutput) form.Config {
	lines := make([]string, 0, len(snap.NextSteps))
	for _, s := range snap.NextSteps {
		lines = append(lines, FormatNextStep(s))
	}
	return form.Config{
		Title:       "Next steps",
		Description: "One step per line as \"task | deadline\", prefix with [x] when done",
		Fields: []form.Field{
			{Key: "steps", Label: "Steps", Kind: form.KindTextarea, Validate: func(v string) error {
				for _, line := range SplitLines(v) {
					if step := ParseNextStep(line); strings.TrimSpace(step.Task) == "" {
						return fmt.Errorf("every step needs a task")
					}
				}
				return nil
			}},
		},
		Initial: form.Values{"steps": strings.Join(lines, "\n")},
		Save: func(ctx context.Context, v form.Values) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var steps []dto.NextStepInput
			for _, line := range SplitLines(v["steps"]) {
				steps = append(steps, ParseNextStep(line))
			}
			return uc.UpdateNextSteps(ctx, steps)
		},
	}
}

func documentForm(uc projectin.Usecase, snap dto.DashboardOutput, id int) (form.Config, error) {
	var doc *dto.DocumentOutput
	for i := range snap.Documents {
		if snap.Documents[i].ID == id {
			doc = &snap.Documents[i]
			break
		}
	}
	if doc == nil {
		return form.Config{}, fmt.Errorf("%w: document %d", apperrors.ErrNotFound, id)
	}
	options := make([]form.Option, 0, len(snap.Statuses))
	for _, s := range snap.Statuses {
		options = append(options, form.Option{Value: s.Value, Label: s.Label})
	}
	return form.Config{
		Title:       "Document status",
		Description: doc.Title,
		Fields: []form.Field{
			{Key: "status", Label: "Status", Kind: form.KindSelect, Required: true, Options: options},
		},
		Initial: form.Values{"status": doc.Status},
		Save: func(ctx context.Context, v form.Values) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return uc.SetDocumentStatus(ctx, dto.SetDocumentStatusInput{ID: id, Status: v["status"]})
		},
	}, nil
}

// SplitLines returns the trimmed non-empty lines of s.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func FormatNextStep(s dto.NextStepOutput) string {
	line := s.Task
	if s.Deadline != "" {
		line += " | " + s.Deadline
	}
	if s.Completed {
		line = "[x] " + line
	}
	return line
}

func ParseNextStep(line string) dto.NextStepInput {
	line = strings.TrimSpace(line)
	step := dto.NextStepInput{}
	if rest, ok := strings.CutPrefix(line, "[x]"); ok {
		step.Completed = true
		line = strings.TrimSpace(rest)
	}
	task, deadline, _ := strings.Cut(line, "|")
	step.Task = strings.TrimSpace(task)
	step.Deadline = strings.TrimSpace(deadline)
	return step
}
