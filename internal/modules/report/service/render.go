package service

import (
	"fmt"
	"strings"
	"time"

	projectdto "scopdash/internal/modules/project/dto"
	"scopdash/internal/modules/report/domain"
	apperrors "scopdash/internal/platform/errors"
	"scopdash/internal/platform/markdown"
	"scopdash/internal/platform/money"
	"scopdash/internal/platform/slug"
)

const barWidth = 20

// Render builds the report for the visible sections. An empty selection is
// rejected.
func Render(snap projectdto.DashboardOutput, vis domain.Visibility, rec domain.Recommendation, now time.Time) (domain.Document, error) {
	sections := vis.Visible()
	if len(sections) == 0 {
		return domain.Document{}, fmt.Errorf("%w: select at least one section to print", apperrors.ErrInvalidInput)
	}

	keys := make([]string, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, string(s))
	}
	meta := []markdown.Field{
		{Key: "title", Value: snap.Project.Name},
		{Key: "editor", Value: snap.Project.Editor},
		{Key: "date", Value: snap.Project.Date.Format("2006-01-02")},
		{Key: "recipients", Value: snap.Project.Recipients},
		{Key: "sections", Value: keys},
	}
	if vis[domain.SectionRecommendation] && rec.Decision != domain.DecisionNone {
		meta = append(meta, markdown.Field{Key: "decision", Value: string(rec.Decision)})
	}
	meta = append(meta, markdown.Field{Key: "generated_at", Value: now.UTC().Format(time.RFC3339)})

	b := &strings.Builder{}
	fmt.Fprintf(b, "# %s\n\n", snap.Project.Name)
	fmt.Fprintf(b, "Interim report of %s by %s.\n", snap.Project.Date.Format("02/01/2006"), snap.Project.Editor)
	if snap.Project.Recipients != "" {
		fmt.Fprintf(b, "Recipients: %s.\n", snap.Project.Recipients)
	}
	for _, s := range sections {
		fmt.Fprintf(b, "\n## %s\n\n", s.Label())
		switch s {
		case domain.SectionKeyMetrics:
			writeKeyMetrics(b, snap.Metrics)
		case domain.SectionCharts:
			writeCharts(b, snap.Metrics)
		case domain.SectionAnalysis:
			writeAnalysis(b, snap.Analysis)
		case domain.SectionDocuments:
			writeDocuments(b, snap.Documents)
		case domain.SectionNextSteps:
			writeNextSteps(b, snap.NextSteps)
		case domain.SectionRecommendation:
			writeRecommendation(b, rec)
		}
	}
	return domain.Document{Meta: meta, Body: b.String()}, nil
}

// FileName is the default report file name for a project on a given day.
func FileName(projectName string, day time.Time) string {
	return fmt.Sprintf("%s-report-%s.md", slug.Make(projectName), day.Format("2006-01-02"))
}

func writeKeyMetrics(b *strings.Builder, m projectdto.MetricsOutput) {
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Employee engagement | %s |\n", money.Percent(float64(m.EmployeeEngagement)))
	fmt.Fprintf(b, "| Secured financing | %s of %s (%s) |\n", money.Euros(m.SecuredFinancing), money.Euros(m.TotalFinancing), money.Percent(m.FinancingPercent))
	fmt.Fprintf(b, "| Steps completed | %d / %d |\n", m.StepsCompleted, m.TotalSteps)
}

func writeCharts(b *strings.Builder, m projectdto.MetricsOutput) {
	remainingPct := 0.0
	if m.TotalFinancing > 0 {
		remainingPct = m.RemainingFinancing / m.TotalFinancing * 100
	}
	engagement := float64(m.EmployeeEngagement)
	b.WriteString("Financing\n\n```\n")
	fmt.Fprintf(b, "secured    %s %s\n", domain.Bar(m.FinancingPercent, barWidth), money.Euros(m.SecuredFinancing))
	fmt.Fprintf(b, "remaining  %s %s\n", domain.Bar(remainingPct, barWidth), money.Euros(m.RemainingFinancing))
	b.WriteString("```\n\nEngagement\n\n```\n")
	fmt.Fprintf(b, "favourable %s %s\n", domain.Bar(engagement, barWidth), money.Percent(engagement))
	fmt.Fprintf(b, "other      %s %s\n", domain.Bar(100-engagement, barWidth), money.Percent(100-engagement))
	b.WriteString("```\n")
}

func writeAnalysis(b *strings.Builder, a projectdto.AnalysisOutput) {
	b.WriteString("### Strengths\n\n")
	writeBullets(b, a.Strengths)
	b.WriteString("\n### Points of vigilance\n\n")
	writeBullets(b, a.VigilancePoints)
}

func writeBullets(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("_None._\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeDocuments(b *strings.Builder, docs []projectdto.DocumentOutput) {
	if len(docs) == 0 {
		b.WriteString("_No deliverables._\n")
		return
	}
	for _, d := range docs {
		mark := " "
		if d.Status == "completed" {
			mark = "x"
		}
		fmt.Fprintf(b, "- [%s] %s (%s)\n", mark, d.Title, d.StatusLabel)
	}
}

func writeNextSteps(b *strings.Builder, steps []projectdto.NextStepOutput) {
	if len(steps) == 0 {
		b.WriteString("_No next steps._\n")
		return
	}
	for _, s := range steps {
		line := fmt.Sprintf("%d. %s", s.ID, s.Task)
		if s.Deadline != "" {
			line += " (" + s.Deadline + ")"
		}
		if s.Completed {
			line += " ✓"
		}
		b.WriteString(line + "\n")
	}
}

func writeRecommendation(b *strings.Builder, rec domain.Recommendation) {
	fmt.Fprintf(b, "**Steering committee decision:** %s\n", rec.Decision.Label())
	if rec.Decision == domain.DecisionConditionalGo && rec.Conditions != "" {
		fmt.Fprintf(b, "\nConditions and reservations:\n\n> %s\n", strings.ReplaceAll(rec.Conditions, "\n", "\n> "))
	}
}
