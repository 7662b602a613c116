package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"scopdash/internal/modules/project/domain"
	"scopdash/internal/modules/project/dto"
	projectin "scopdash/internal/modules/project/port/in"
	"scopdash/internal/modules/project/service"
	"scopdash/internal/modules/project/usecase"
	apperrors "scopdash/internal/platform/errors"
	"scopdash/internal/platform/form"
)

func newUsecase(t *testing.T) projectin.Usecase {
	t.Helper()
	svc := service.NewProjectService(domain.Seed(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)), nil, nil)
	return usecase.NewInteractor(svc)
}

func TestDerivedKeysInFormValuesAreIgnored(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	ctx := context.Background()

	err := uc.UpdateMetricsFromValues(ctx, form.Values{
		"employeeEngagement": "85",
		"stepsCompleted":     "99",
		"totalSteps":         "99",
		"unrelated":          "x",
	})
	if err != nil {
		t.Fatalf("update from values: %v", err)
	}
	out, err := uc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if out.Metrics.EmployeeEngagement != 85 {
		t.Fatalf("expected engagement 85, got %d", out.Metrics.EmployeeEngagement)
	}
	if out.Metrics.StepsCompleted != 4 || out.Metrics.TotalSteps != 6 {
		t.Fatalf("derived counts must follow documents, got %d/%d", out.Metrics.StepsCompleted, out.Metrics.TotalSteps)
	}
}

func TestMetricsInputFromValues(t *testing.T) {
	t.Parallel()
	in, err := usecase.MetricsInputFromValues(form.Values{"securedFinancing": "1200.5", "totalFinancing": " "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.SecuredFinancing == nil || *in.SecuredFinancing != 1200.5 || in.TotalFinancing != nil || in.EmployeeEngagement != nil {
		t.Fatalf("unexpected input: %+v", in)
	}
	if _, err := usecase.MetricsInputFromValues(form.Values{"employeeEngagement": "12.5"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for fractional engagement, got %v", err)
	}
}

func TestSnapshotMapsDashboard(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	ctx := context.Background()
	if err := uc.UpdateDocuments(ctx, []dto.DocumentInput{{ID: 3, Title: "Only", Status: "in_progress"}}); err != nil {
		t.Fatalf("update documents: %v", err)
	}
	out, err := uc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := []dto.DocumentOutput{{ID: 3, Title: "Only", Status: "in_progress", StatusLabel: "In progress"}}
	if diff := cmp.Diff(want, out.Documents); diff != "" {
		t.Fatalf("documents mismatch (-want +got):\n%s", diff)
	}
	if out.Metrics.FinancingPercent != 70 || out.Metrics.RemainingFinancing != 150000 {
		t.Fatalf("unexpected financing figures: %+v", out.Metrics)
	}
}

func TestImportMapsEverySection(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	ctx := context.Background()
	name := "Coop"
	engagement := 50
	strengths := []string{"s"}
	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	err := uc.Import(ctx, dto.ImportInput{
		Metrics:   &dto.UpdateMetricsInput{EmployeeEngagement: &engagement},
		Project:   &dto.UpdateProjectInput{Name: &name, Date: &date},
		Documents: &[]dto.DocumentInput{{ID: 1, Title: "d", Status: "completed"}},
		Analysis:  &dto.UpdateAnalysisInput{Strengths: &strengths},
		NextSteps: &[]dto.NextStepInput{{Task: "t", Deadline: "soon", Completed: true}},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	out, _ := uc.Snapshot(ctx)
	if out.Project.Name != "Coop" || !out.Project.Date.Equal(date) || out.Metrics.EmployeeEngagement != 50 {
		t.Fatalf("unexpected project or metrics: %+v %+v", out.Project, out.Metrics)
	}
	if diff := cmp.Diff([]dto.NextStepOutput{{ID: 1, Task: "t", Deadline: "soon", Completed: true}}, out.NextSteps); diff != "" {
		t.Fatalf("next steps mismatch (-want +got):\n%s", diff)
	}
	if out.Metrics.StepsCompleted != 1 || out.Metrics.TotalSteps != 1 {
		t.Fatalf("expected 1/1, got %d/%d", out.Metrics.StepsCompleted, out.Metrics.TotalSteps)
	}
}

func TestSnapshotHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := uc.Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
