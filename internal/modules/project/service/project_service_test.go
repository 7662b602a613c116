package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"scopdash/internal/modules/project/domain"
	apperrors "scopdash/internal/platform/errors"
)

type recordingNotifier struct {
	mu       sync.Mutex
	channels []domain.Channel
}

func (r *recordingNotifier) Notify(ch domain.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = append(r.channels, ch)
}

func (r *recordingNotifier) take() []domain.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.channels
	r.channels = nil
	return out
}

func newService(t *testing.T) (*ProjectService, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	return NewProjectService(domain.Seed(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)), n, nil), n
}

func equalChannels(a, b []domain.Channel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUpdateMetricsNotifiesTouchedChannels(t *testing.T) {
	t.Parallel()
	svc, n := newService(t)
	ctx := context.Background()

	engagement := 90
	if err := svc.UpdateMetrics(ctx, domain.MetricsPatch{EmployeeEngagement: &engagement}); err != nil {
		t.Fatalf("update engagement: %v", err)
	}
	if got := n.take(); !equalChannels(got, []domain.Channel{domain.ChannelEngagement}) {
		t.Fatalf("unexpected channels: %v", got)
	}

	secured := 400000.0
	if err := svc.UpdateMetrics(ctx, domain.MetricsPatch{SecuredFinancing: &secured}); err != nil {
		t.Fatalf("update financing: %v", err)
	}
	if got := n.take(); !equalChannels(got, []domain.Channel{domain.ChannelFinancing}) {
		t.Fatalf("unexpected channels: %v", got)
	}

	m := svc.Snapshot(ctx).Metrics
	if m.EmployeeEngagement != 90 || m.SecuredFinancing != 400000 || m.TotalFinancing != 500000 {
		t.Fatalf("unexpected merged metrics: %+v", m)
	}
}

func TestUpdateMetricsRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	svc, n := newService(t)
	bad := 120
	secured := 1.0
	err := svc.UpdateMetrics(context.Background(), domain.MetricsPatch{EmployeeEngagement: &bad, SecuredFinancing: &secured})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if svc.Snapshot(context.Background()).Metrics.SecuredFinancing != 350000 {
		t.Fatalf("rejected patch must not be partially applied")
	}
	if got := n.take(); len(got) != 0 {
		t.Fatalf("rejected patch must not notify: %v", got)
	}
}

func TestUpdateDocumentsDrivesDerivedCounts(t *testing.T) {
	t.Parallel()
	svc, n := newService(t)
	ctx := context.Background()
	docs := []domain.Document{
		{ID: 1, Title: "a", Status: domain.StatusCompleted},
		{ID: 2, Title: "b", Status: domain.StatusPending},
	}
	if err := svc.UpdateDocuments(ctx, docs); err != nil {
		t.Fatalf("update documents: %v", err)
	}
	snap := svc.Snapshot(ctx)
	km := domain.DeriveKeyMetrics(snap.Metrics, snap.Documents)
	if km.StepsCompleted != 1 || km.TotalSteps != 2 {
		t.Fatalf("expected 1/2, got %d/%d", km.StepsCompleted, km.TotalSteps)
	}
	if got := n.take(); !equalChannels(got, []domain.Channel{domain.ChannelSteps, domain.ChannelDocuments}) {
		t.Fatalf("unexpected channels: %v", got)
	}
}

func TestSetDocumentStatus(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()
	if err := svc.SetDocumentStatus(ctx, 6, domain.StatusCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if svc.Snapshot(ctx).Documents[5].Status != domain.StatusCompleted {
		t.Fatalf("status not applied")
	}
	if err := svc.SetDocumentStatus(ctx, 42, domain.StatusCompleted); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.SetDocumentStatus(ctx, 1, "archived"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestEveryMutationNotifiesItsChannel(t *testing.T) {
	t.Parallel()
	svc, n := newService(t)
	ctx := context.Background()
	name := "Renamed"
	if err := svc.UpdateProjectData(ctx, domain.ProjectPatch{Name: &name}); err != nil {
		t.Fatalf("update project: %v", err)
	}
	strengths := []string{"one"}
	if err := svc.UpdateAnalysis(ctx, domain.AnalysisPatch{Strengths: &strengths}); err != nil {
		t.Fatalf("update analysis: %v", err)
	}
	if err := svc.UpdateNextSteps(ctx, []domain.NextStep{{ID: 7, Task: "x"}}); err != nil {
		t.Fatalf("update next steps: %v", err)
	}
	want := []domain.Channel{domain.ChannelProject, domain.ChannelAnalysis, domain.ChannelNextSteps}
	if got := n.take(); !equalChannels(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	snap := svc.Snapshot(ctx)
	if snap.Project.Name != "Renamed" || snap.Project.Editor != "Cabinet AuditPlus" {
		t.Fatalf("project patch must merge: %+v", snap.Project)
	}
	if len(snap.Analysis.VigilancePoints) != 4 {
		t.Fatalf("analysis patch must keep untouched lists")
	}
	if snap.NextSteps[0].ID != 1 {
		t.Fatalf("next step ids must be reassigned, got %d", snap.NextSteps[0].ID)
	}
}

func TestResetRestoresSeedAndNotifiesAll(t *testing.T) {
	t.Parallel()
	svc, n := newService(t)
	ctx := context.Background()
	if err := svc.UpdateDocuments(ctx, nil); err != nil {
		t.Fatalf("update documents: %v", err)
	}
	n.take()
	if err := svc.ResetToSeed(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(svc.Snapshot(ctx).Documents) != 6 {
		t.Fatalf("reset must restore seeded documents")
	}
	if got := n.take(); !equalChannels(got, domain.AllChannels) {
		t.Fatalf("reset must notify every channel, got %v", got)
	}
}

func TestApplyImportIsAllOrNothing(t *testing.T) {
	t.Parallel()
	svc, n := newService(t)
	ctx := context.Background()
	engagement := 10
	docs := []domain.Document{{ID: 1, Status: "nope"}}
	err := svc.ApplyImport(ctx, Bundle{
		Metrics:   &domain.MetricsPatch{EmployeeEngagement: &engagement},
		Documents: &docs,
	})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if svc.Snapshot(ctx).Metrics.EmployeeEngagement != 78 {
		t.Fatalf("metrics must stay untouched when a later section is invalid")
	}
	if got := n.take(); len(got) != 0 {
		t.Fatalf("failed import must not notify: %v", got)
	}
}

func TestApplyImportSkipsMissingSections(t *testing.T) {
	t.Parallel()
	svc, n := newService(t)
	ctx := context.Background()
	strengths := []string{"imported"}
	if err := svc.ApplyImport(ctx, Bundle{Analysis: &domain.AnalysisPatch{Strengths: &strengths}}); err != nil {
		t.Fatalf("import: %v", err)
	}
	snap := svc.Snapshot(ctx)
	if snap.Analysis.Strengths[0] != "imported" || len(snap.Documents) != 6 {
		t.Fatalf("unexpected state after partial import: %+v", snap.Analysis)
	}
	if got := n.take(); !equalChannels(got, []domain.Channel{domain.ChannelAnalysis}) {
		t.Fatalf("unexpected channels: %v", got)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	snap := svc.Snapshot(context.Background())
	snap.Documents[0].Status = domain.StatusPending
	if svc.Snapshot(context.Background()).Documents[0].Status != domain.StatusCompleted {
		t.Fatalf("snapshot mutation leaked into the store")
	}
}
