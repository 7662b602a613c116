package print

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	reportdto "scopdash/internal/modules/report/dto"
	"scopdash/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Settings(ctx context.Context) reportdto.SettingsOutput
	ToggleSection(ctx context.Context, key string) (reportdto.SettingsOutput, error)
	ToggleAll(ctx context.Context) reportdto.SettingsOutput
	Render(ctx context.Context) (reportdto.RenderOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SettingsMsg struct {
	Settings reportdto.SettingsOutput
	Err      error
}

type PreviewMsg struct {
	Report reportdto.RenderOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	settings reportdto.SettingsOutput
	cursor   int
	preview  viewport.Model
	renderer *glamour.TermRenderer
	report   reportdto.RenderOutput
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text)
	r, _ := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(0))
	return Model{port: port, preview: vp, renderer: r}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSettingsCmd(), m.Refresh())
}

// Refresh re-renders the preview from current data and settings.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Render(context.Background())
		return PreviewMsg{Report: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.preview.SetContent(m.renderPreview())

	case SettingsMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.settings = msg.Settings
		return m, m.Refresh()

	case PreviewMsg:
		m.err = msg.Err
		m.report = msg.Report
		m.preview.SetContent(m.renderPreview())

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.settings.Sections)-1 {
				m.cursor++
			}
			return m, nil
		case " ", "x":
			if m.cursor < len(m.settings.Sections) {
				return m, m.toggleCmd(m.settings.Sections[m.cursor].Key)
			}
			return m, nil
		case "A":
			return m, m.toggleAllCmd()
		}
	}

	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	sideW := m.sideWidth()
	side := theme.Pane.Width(sideW).Height(max(m.height-3, 1)).Render(m.renderSettings())
	main := lipgloss.NewStyle().Width(m.width - sideW - 4).Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, main) + "\n" +
		theme.Muted.Render("↑/↓: section  space: toggle  A: select all  w: write report  :decision …")
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) sideWidth() int {
	return max(m.width*4/10, 36)
}

func (m *Model) resize() {
	w := max(m.width-m.sideWidth()-4, 10)
	m.preview.Width = w
	m.preview.Height = max(m.height-1, 1)
	if r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(w-2)); err == nil {
		m.renderer = r
	}
}

func (m Model) renderSettings() string {
	s := m.settings
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Print settings") + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d of %d sections", s.SelectedCount, len(s.Sections))) + "\n\n")
	for i, sec := range s.Sections {
		box := "[ ]"
		if sec.Visible {
			box = theme.Good.Render("[x]")
		}
		line := box + " " + sec.Label
		if i == m.cursor {
			line = theme.Hot.Render("› ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render("Recommendation") + "\n")
	sb.WriteString(theme.Decision(s.Decision).Render(s.DecisionLabel) + "\n")
	if s.Conditions != "" {
		sb.WriteString(theme.Muted.Render(s.Conditions) + "\n")
	}
	return sb.String()
}

func (m Model) renderPreview() string {
	if m.err != nil {
		return theme.Warn.Render(m.err.Error())
	}
	if m.report.Body == "" {
		return theme.Muted.Render("(nothing to preview)")
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(m.report.Body); err == nil {
			return out
		}
	}
	return m.report.Body
}

func (m Model) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		return SettingsMsg{Settings: m.port.Settings(context.Background())}
	}
}

func (m Model) toggleCmd(key string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ToggleSection(context.Background(), key)
		return SettingsMsg{Settings: out, Err: err}
	}
}

func (m Model) toggleAllCmd() tea.Cmd {
	return func() tea.Msg {
		return SettingsMsg{Settings: m.port.ToggleAll(context.Background())}
	}
}

// ReloadSettings re-reads print settings after a change made elsewhere.
func (m Model) ReloadSettings() tea.Cmd { return m.loadSettingsCmd() }
