package in

import (
	"context"

	"scopdash/internal/modules/project/dto"
	"scopdash/internal/platform/form"
)

type Usecase interface {
	Snapshot(ctx context.Context) (dto.DashboardOutput, error)
	UpdateMetrics(ctx context.Context, input dto.UpdateMetricsInput) error
	UpdateMetricsFromValues(ctx context.Context, values form.Values) error
	UpdateDocuments(ctx context.Context, input []dto.DocumentInput) error
	SetDocumentStatus(ctx context.Context, input dto.SetDocumentStatusInput) error
	UpdateProject(ctx context.Context, input dto.UpdateProjectInput) error
	UpdateAnalysis(ctx context.Context, input dto.UpdateAnalysisInput) error
	UpdateNextSteps(ctx context.Context, input []dto.NextStepInput) error
	Reset(ctx context.Context) error
	Import(ctx context.Context, input dto.ImportInput) error
}
