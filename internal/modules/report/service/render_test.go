package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	projectdto "scopdash/internal/modules/project/dto"
	"scopdash/internal/modules/report/domain"
	apperrors "scopdash/internal/platform/errors"
)

func sampleDashboard() projectdto.DashboardOutput {
	return projectdto.DashboardOutput{
		Project: projectdto.ProjectOutput{Name: "Transmission SCOP 'Innov&Co'", Editor: "Cabinet AuditPlus", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		Metrics: projectdto.MetricsOutput{EmployeeEngagement: 78, SecuredFinancing: 350000, TotalFinancing: 500000, StepsCompleted: 1, TotalSteps: 2, FinancingPercent: 70, RemainingFinancing: 150000},
		Documents: []projectdto.DocumentOutput{
			{ID: 1, Title: "Diagnosis", Status: "completed", StatusLabel: "Completed"},
			{ID: 2, Title: "Bank letters", Status: "pending", StatusLabel: "Pending"},
		},
		Analysis:  projectdto.AnalysisOutput{Strengths: []string{"Cohesion"}},
		NextSteps: []projectdto.NextStepOutput{{ID: 1, Task: "Close round", Deadline: "3 weeks"}},
	}
}

func TestRenderIncludesOnlyVisibleSections(t *testing.T) {
	t.Parallel()
	vis := domain.Visibility{domain.SectionDocuments: true, domain.SectionNextSteps: true}
	doc, err := Render(sampleDashboard(), vis, domain.Recommendation{}, time.Now())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc.Body, "- [x] Diagnosis (Completed)") || !strings.Contains(doc.Body, "- [ ] Bank letters (Pending)") {
		t.Fatalf("documents missing:\n%s", doc.Body)
	}
	if !strings.Contains(doc.Body, "1. Close round (3 weeks)") {
		t.Fatalf("next steps missing:\n%s", doc.Body)
	}
	for _, hidden := range []string{"## Key metrics", "## Analysis", "## Conclusion", "Financing"} {
		if strings.Contains(doc.Body, hidden) {
			t.Fatalf("hidden section %q rendered:\n%s", hidden, doc.Body)
		}
	}
}

func TestRenderRejectsEmptySelection(t *testing.T) {
	t.Parallel()
	_, err := Render(sampleDashboard(), domain.AllVisible().ToggleAll(), domain.Recommendation{}, time.Now())
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRenderRecommendationAndMetadata(t *testing.T) {
	t.Parallel()
	rec, _ := domain.NewRecommendation(domain.DecisionConditionalGo, "Close 50k within 4 weeks")
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	doc, err := Render(sampleDashboard(), domain.AllVisible(), rec, now)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc.Body, "**Steering committee decision:** Conditional Go") || !strings.Contains(doc.Body, "> Close 50k within 4 weeks") {
		t.Fatalf("recommendation missing:\n%s", doc.Body)
	}
	if !strings.Contains(doc.Body, "| Steps completed | 1 / 2 |") {
		t.Fatalf("steps metric missing:\n%s", doc.Body)
	}
	meta := map[string]any{}
	for _, f := range doc.Meta {
		meta[f.Key] = f.Value
	}
	if meta["decision"] != "conditional_go" || meta["date"] != "2026-03-02" || meta["generated_at"] != "2026-03-05T10:00:00Z" {
		t.Fatalf("unexpected metadata: %v", meta)
	}
	if len(meta["sections"].([]string)) != len(domain.Sections) {
		t.Fatalf("expected every section listed: %v", meta["sections"])
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()
	got := FileName("Transmission SCOP 'Innov&Co'", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	if got != "transmission-scop-innov-co-report-2026-03-05.md" {
		t.Fatalf("unexpected file name %s", got)
	}
}
