package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"scopdash/internal/modules/project/domain"
	"scopdash/internal/modules/project/dto"
	projectin "scopdash/internal/modules/project/port/in"
	"scopdash/internal/modules/project/service"
	apperrors "scopdash/internal/platform/errors"
	"scopdash/internal/platform/form"
)

type Interactor struct {
	svc *service.ProjectService
}

func NewInteractor(svc *service.ProjectService) projectin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.DashboardOutput, error) {
	if err := ctx.Err(); err != nil {
		return dto.DashboardOutput{}, err
	}
	return toDashboardOutput(i.svc.Snapshot(ctx)), nil
}

func (i *Interactor) UpdateMetrics(ctx context.Context, input dto.UpdateMetricsInput) error {
	return i.svc.UpdateMetrics(ctx, toMetricsPatch(input))
}

// UpdateMetricsFromValues applies raw form input. Blank values are skipped and
// keys other than the settable metrics, derived step counts included, are
// ignored.
func (i *Interactor) UpdateMetricsFromValues(ctx context.Context, values form.Values) error {
	input, err := MetricsInputFromValues(values)
	if err != nil {
		return err
	}
	return i.UpdateMetrics(ctx, input)
}

func (i *Interactor) UpdateDocuments(ctx context.Context, input []dto.DocumentInput) error {
	return i.svc.UpdateDocuments(ctx, toDocuments(input))
}

func (i *Interactor) SetDocumentStatus(ctx context.Context, input dto.SetDocumentStatusInput) error {
	return i.svc.SetDocumentStatus(ctx, input.ID, domain.Status(input.Status))
}

func (i *Interactor) UpdateProject(ctx context.Context, input dto.UpdateProjectInput) error {
	return i.svc.UpdateProjectData(ctx, toProjectPatch(input))
}

func (i *Interactor) UpdateAnalysis(ctx context.Context, input dto.UpdateAnalysisInput) error {
	return i.svc.UpdateAnalysis(ctx, domain.AnalysisPatch{Strengths: input.Strengths, VigilancePoints: input.VigilancePoints})
}

func (i *Interactor) UpdateNextSteps(ctx context.Context, input []dto.NextStepInput) error {
	return i.svc.UpdateNextSteps(ctx, toNextSteps(input))
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.ResetToSeed(ctx)
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bundle := service.Bundle{}
	if input.Metrics != nil {
		patch := toMetricsPatch(*input.Metrics)
		bundle.Metrics = &patch
	}
	if input.Project != nil {
		patch := toProjectPatch(*input.Project)
		bundle.Project = &patch
	}
	if input.Documents != nil {
		docs := toDocuments(*input.Documents)
		bundle.Documents = &docs
	}
	if input.Analysis != nil {
		bundle.Analysis = &domain.AnalysisPatch{Strengths: input.Analysis.Strengths, VigilancePoints: input.Analysis.VigilancePoints}
	}
	if input.NextSteps != nil {
		steps := toNextSteps(*input.NextSteps)
		bundle.NextSteps = &steps
	}
	return i.svc.ApplyImport(ctx, bundle)
}

// MetricsInputFromValues parses the settable metric keys out of form values.
func MetricsInputFromValues(values form.Values) (dto.UpdateMetricsInput, error) {
	input := dto.UpdateMetricsInput{}
	if raw := strings.TrimSpace(values[dto.KeyEngagement]); raw != "" {
		n, err := form.ParseNumber(raw)
		if err != nil || n != math.Trunc(n) {
			return dto.UpdateMetricsInput{}, fmt.Errorf("%w: %s must be a whole number", apperrors.ErrInvalidInput, dto.KeyEngagement)
		}
		v := int(n)
		input.EmployeeEngagement = &v
	}
	for key, dst := range map[string]**float64{dto.KeySecured: &input.SecuredFinancing, dto.KeyTotal: &input.TotalFinancing} {
		raw := strings.TrimSpace(values[key])
		if raw == "" {
			continue
		}
		n, err := form.ParseNumber(raw)
		if err != nil {
			return dto.UpdateMetricsInput{}, fmt.Errorf("%w: %s must be a number", apperrors.ErrInvalidInput, key)
		}
		*dst = &n
	}
	return input, nil
}

func toMetricsPatch(input dto.UpdateMetricsInput) domain.MetricsPatch {
	return domain.MetricsPatch{
		EmployeeEngagement: input.EmployeeEngagement,
		SecuredFinancing:   input.SecuredFinancing,
		TotalFinancing:     input.TotalFinancing,
	}
}

func toProjectPatch(input dto.UpdateProjectInput) domain.ProjectPatch {
	return domain.ProjectPatch{Name: input.Name, Editor: input.Editor, Date: input.Date, Recipients: input.Recipients}
}

func toDocuments(input []dto.DocumentInput) []domain.Document {
	docs := make([]domain.Document, 0, len(input))
	for _, d := range input {
		docs = append(docs, domain.Document{ID: d.ID, Title: d.Title, Status: domain.Status(d.Status)})
	}
	return docs
}

func toNextSteps(input []dto.NextStepInput) []domain.NextStep {
	steps := make([]domain.NextStep, 0, len(input))
	for _, s := range input {
		steps = append(steps, domain.NextStep{Task: s.Task, Deadline: s.Deadline, Completed: s.Completed})
	}
	return steps
}

func toDashboardOutput(s domain.State) dto.DashboardOutput {
	km := domain.DeriveKeyMetrics(s.Metrics, s.Documents)
	out := dto.DashboardOutput{
		Project: dto.ProjectOutput{Name: s.Project.Name, Editor: s.Project.Editor, Date: s.Project.Date, Recipients: s.Project.Recipients},
		Metrics: dto.MetricsOutput{
			EmployeeEngagement: km.EmployeeEngagement,
			SecuredFinancing:   km.SecuredFinancing,
			TotalFinancing:     km.TotalFinancing,
			StepsCompleted:     km.StepsCompleted,
			TotalSteps:         km.TotalSteps,
			FinancingPercent:   km.FinancingPercent(),
			RemainingFinancing: km.RemainingFinancing(),
		},
		Analysis: dto.AnalysisOutput{
			Strengths:       append([]string(nil), s.Analysis.Strengths...),
			VigilancePoints: append([]string(nil), s.Analysis.VigilancePoints...),
		},
	}
	for _, d := range s.Documents {
		out.Documents = append(out.Documents, dto.DocumentOutput{ID: d.ID, Title: d.Title, Status: string(d.Status), StatusLabel: d.Status.Label()})
	}
	for _, st := range domain.Statuses {
		out.Statuses = append(out.Statuses, dto.StatusOption{Value: string(st), Label: st.Label()})
	}
	for _, n := range s.NextSteps {
		out.NextSteps = append(out.NextSteps, dto.NextStepOutput{ID: n.ID, Task: n.Task, Deadline: n.Deadline, Completed: n.Completed})
	}
	return out
}
