package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	projectdto "scopdash/internal/modules/project/dto"
	"scopdash/internal/platform/money"
	"scopdash/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Snapshot(ctx context.Context) (projectdto.DashboardOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Dashboard projectdto.DashboardOutput
	Err       error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	data     projectdto.DashboardOutput
	err      error
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, viewport: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads the dashboard from the store.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Snapshot(context.Background())
		return LoadedMsg{Dashboard: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-1, 1)
		m.viewport.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Dashboard
		}
		m.viewport.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard…")
	}
	return m.viewport.View() + "\n" + theme.Muted.Render("p: project  m: metrics  a: analysis  n: next steps  ↑/↓: scroll")
}

// Data returns the last loaded dashboard.
func (m Model) Data() projectdto.DashboardOutput { return m.data }

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	d := m.data
	paneW := m.width/2 - 2
	if paneW < 30 {
		paneW = 30
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Project.Name) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s · %s · %s",
		d.Project.Editor, d.Project.Date.Format("02/01/2006"), d.Project.Recipients)) + "\n\n")

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(paneW).Render(m.renderMetrics()),
		theme.Pane.Width(paneW).Render(m.renderCharts(paneW-4)),
	) + "\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(paneW).Render(renderList("Strengths", d.Analysis.Strengths, theme.Good)),
		theme.Pane.Width(paneW).Render(renderList("Points of vigilance", d.Analysis.VigilancePoints, theme.Warn)),
	) + "\n")
	sb.WriteString(theme.Pane.Width(paneW*2 + 2).Render(m.renderNextSteps()))
	return sb.String()
}

func (m Model) renderMetrics() string {
	k := m.data.Metrics
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Key metrics") + "\n\n")
	sb.WriteString(theme.Muted.Render("Employee engagement  ") + fmt.Sprintf("%d%%\n", k.EmployeeEngagement))
	sb.WriteString(theme.Muted.Render("Secured financing    ") + money.Euros(k.SecuredFinancing) + "\n")
	sb.WriteString(theme.Muted.Render("                     ") + theme.Muted.Render("of "+money.Euros(k.TotalFinancing)) + "\n")
	sb.WriteString(theme.Muted.Render("Steps completed      ") + fmt.Sprintf("%d / %d", k.StepsCompleted, k.TotalSteps))
	return sb.String()
}

func (m Model) renderCharts(width int) string {
	k := m.data.Metrics
	barW := max(width-14, 5)
	engagement := float64(k.EmployeeEngagement)
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Financing") + "\n")
	sb.WriteString("secured    " + bar(k.FinancingPercent, barW, theme.Good) + fmt.Sprintf(" %.0f%%\n", k.FinancingPercent))
	sb.WriteString("remaining  " + bar(100-k.FinancingPercent, barW, theme.Muted) + " " + money.Euros(k.RemainingFinancing) + "\n\n")
	sb.WriteString(theme.Title.Render("Engagement") + "\n")
	sb.WriteString("favourable " + bar(engagement, barW, theme.Good) + fmt.Sprintf(" %d%%\n", k.EmployeeEngagement))
	sb.WriteString("other      " + bar(100-engagement, barW, theme.Warn) + fmt.Sprintf(" %d%%", 100-k.EmployeeEngagement))
	return sb.String()
}

func (m Model) renderNextSteps() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Next steps") + "\n\n")
	if len(m.data.NextSteps) == 0 {
		sb.WriteString(theme.Muted.Render("No next steps planned"))
		return sb.String()
	}
	for _, s := range m.data.NextSteps {
		mark := theme.Muted.Render("○")
		if s.Completed {
			mark = theme.Good.Render("●")
		}
		line := fmt.Sprintf("%s %d. %s", mark, s.ID, s.Task)
		if s.Deadline != "" {
			line += theme.Muted.Render("  " + s.Deadline)
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderList(title string, items []string, bullet lipgloss.Style) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	if len(items) == 0 {
		sb.WriteString(theme.Muted.Render("Nothing recorded"))
		return sb.String()
	}
	for _, it := range items {
		sb.WriteString(bullet.Render("• ") + it + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func bar(pct float64, width int, style lipgloss.Style) string {
	pct = math.Max(0, math.Min(100, pct))
	filled := int(math.Round(pct / 100 * float64(width)))
	return style.Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", width-filled))
}

