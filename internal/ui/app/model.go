package app

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	projectdto "scopdash/internal/modules/project/dto"
	reportdto "scopdash/internal/modules/report/dto"
	transferdto "scopdash/internal/modules/transfer/dto"
	"scopdash/internal/platform/form"
	"scopdash/internal/ui/components"
	"scopdash/internal/ui/theme"
	dashboardview "scopdash/internal/ui/views/dashboard"
	documentsview "scopdash/internal/ui/views/documents"
	printview "scopdash/internal/ui/views/print"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type projectPort interface {
	Snapshot(ctx context.Context) (projectdto.DashboardOutput, error)
	EditForm(ctx context.Context, target string) (form.Config, error)
	Reset(ctx context.Context) error
}

type reportPort interface {
	Settings(ctx context.Context) reportdto.SettingsOutput
	ToggleSection(ctx context.Context, key string) (reportdto.SettingsOutput, error)
	ToggleAll(ctx context.Context) reportdto.SettingsOutput
	SetRecommendation(ctx context.Context, decision, conditions string) error
	Render(ctx context.Context) (reportdto.RenderOutput, error)
	Write(ctx context.Context, path string) (reportdto.WriteOutput, error)
}

type transferPort interface {
	ExportToFile(ctx context.Context, path string) (transferdto.ExportOutput, error)
	ImportFile(ctx context.Context, path string) error
	DefaultPath(dir string) string
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabDocuments
	tabPrint
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Documents", "Print"}

var paletteHints = []string{
	"edit project",
	"edit metrics",
	"edit analysis",
	"edit next-steps",
	"export",
	"import ",
	"reset",
	"decision go",
	"decision no_go",
	"decision conditional_go ",
	"decision none",
	"print",
	"sections:all",
	"section ",
}

// ─── async messages ───────────────────────────────────────────────────────────

type formReadyMsg struct {
	cfg form.Config
	err error
}

type exportedMsg struct {
	out transferdto.ExportOutput
	err error
}

type importedMsg struct {
	path string
	err  error
}

type resetDoneMsg struct{ err error }

type decisionSetMsg struct{ err error }

type printedMsg struct {
	out reportdto.WriteOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Edit    key.Binding
	Status  key.Binding
	Toggle  key.Binding
	All     key.Binding
	Print   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Edit:    key.NewBinding(key.WithKeys("p", "m", "a", "n"), key.WithHelp("p/m/a/n", "edit project/metrics/analysis/steps")),
		Status:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "document status")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle section")),
		All:     key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all")),
		Print:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write report")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Edit, k.Status},
		{k.Toggle, k.All, k.Print},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the edit form
// modal, the help overlay and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	exportDir string

	project  projectPort
	report   reportPort
	transfer transferPort

	dashView  dashboardview.Model
	docsView  documentsview.Model
	printView printview.Model

	activeTab    tabID
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	modal        components.FormModal
	confirmReset bool
	status       string
	width        int
	height       int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	exportDir string,
	project projectPort,
	report reportPort,
	transfer transferPort,
	wf *form.Workflow,
	successDelay time.Duration,
) Model {
	return Model{
		exportDir: exportDir,
		project:   project,
		report:    report,
		transfer:  transfer,
		dashView:  dashboardview.New(projectPortBridge{p: project}),
		docsView:  documentsview.New(projectPortBridge{p: project}),
		printView: printview.New(reportPortBridge{p: report}),
		activeTab: tabDashboard,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(paletteHints),
		modal:     components.NewFormModal(wf, successDelay),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.docsView.Init(),
		m.printView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Background refreshes reach their view whatever has focus.
	switch msg := msg.(type) {
	case SyncMsg:
		return m, m.refreshView(msg.View)
	case dashboardview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd
	case documentsview.LoadedMsg:
		var cmd tea.Cmd
		m.docsView, cmd = m.docsView.Update(msg)
		return m, cmd
	case printview.SettingsMsg, printview.PreviewMsg:
		var cmd tea.Cmd
		m.printView, cmd = m.printView.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.modal.SetWidth(min(m.width-4, 90))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil
	case components.FormClosedMsg:
		if msg.Saved {
			m.status = msg.Title + " saved"
		} else {
			m.status = msg.Title + " cancelled"
		}
		return m, nil
	}

	// The modal and the palette intercept all input while open.
	if m.modal.Visible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case formReadyMsg:
		if msg.err != nil {
			m.status = "edit: " + msg.err.Error()
			return m, nil
		}
		cmd, err := m.modal.Open(msg.cfg)
		if err != nil {
			m.status = "edit: " + err.Error()
			return m, nil
		}
		m.status = "editing " + msg.cfg.Title
		return m, cmd

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported to " + msg.out.Path
		}

	case importedMsg:
		if msg.err != nil {
			m.status = "import failed: " + msg.err.Error()
		} else {
			m.status = "imported " + msg.path
		}

	case resetDoneMsg:
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
		} else {
			m.status = "data reset to defaults"
		}

	case decisionSetMsg:
		if msg.err != nil {
			m.status = "decision: " + msg.err.Error()
			return m, nil
		}
		m.status = "recommendation updated"
		return m, m.printView.ReloadSettings()

	case printedMsg:
		if msg.err != nil {
			m.status = "print failed: " + msg.err.Error()
		} else {
			m.status = "report written to " + msg.out.Path
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.confirmReset {
			m.confirmReset = false
			if msg.String() == "y" || msg.String() == "Y" {
				return m, m.resetCmd()
			}
			m.status = "reset aborted"
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "p", "m", "a", "n":
			if m.activeTab == tabDashboard {
				return m, m.editCmd(dashboardTargets[msg.String()])
			}
		case "enter":
			if m.activeTab == tabDocuments {
				if docID, ok := m.docsView.SelectedDocumentID(); ok {
					return m, m.editCmd(documentTarget(docID))
				}
				return m, nil
			}
		case "w":
			if m.activeTab == tabPrint {
				return m, m.printCmd("")
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabDocuments:
		m.docsView, tabCmd = m.docsView.Update(msg)
	case tabPrint:
		m.printView, tabCmd = m.printView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.modal.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.modal.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabDocuments:
		return m.docsView.View()
	case tabPrint:
		return m.printView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "scopdash  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.confirmReset {
		left = theme.Warn.Render("reset all data to defaults? (y/n)")
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := func(n int) string {
		out := strings.TrimSpace(input)
		for i := 0; i < n && i < len(parts); i++ {
			out = strings.TrimSpace(strings.TrimPrefix(out, parts[i]))
		}
		return out
	}

	switch parts[0] {
	case "edit":
		if len(parts) < 2 {
			m.status = "usage: edit <project|metrics|analysis|next-steps|document:<id>>"
			return m, nil
		}
		return m, m.editCmd(parts[1])

	case "export":
		return m, m.exportCmd(rest(1))

	case "import":
		if len(parts) < 2 {
			m.status = "usage: import <path>"
			return m, nil
		}
		return m, m.importCmd(rest(1))

	case "reset":
		m.confirmReset = true
		return m, nil

	case "decision":
		if len(parts) < 2 {
			m.status = "usage: decision <go|no_go|conditional_go|none> [conditions]"
			return m, nil
		}
		decision := parts[1]
		if decision == "none" {
			decision = ""
		}
		m.activeTab = tabPrint
		return m, m.decisionCmd(decision, rest(2))

	case "print":
		m.activeTab = tabPrint
		return m, m.printCmd(rest(1))

	case "sections:all":
		m.activeTab = tabPrint
		return m, m.toggleAllCmd()

	case "section":
		if len(parts) < 2 {
			m.status = "usage: section <key>"
			return m, nil
		}
		m.activeTab = tabPrint
		return m, m.toggleSectionCmd(parts[1])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

var dashboardTargets = map[string]string{
	"p": "project",
	"m": "metrics",
	"a": "analysis",
	"n": "next-steps",
}

func documentTarget(docID int) string {
	return "document:" + strconv.Itoa(docID)
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	return m.activeTab == tabDocuments && m.docsView.Filtering()
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.docsView, _ = m.docsView.Update(sz)
	m.printView, _ = m.printView.Update(sz)
}

func (m Model) refreshView(view string) tea.Cmd {
	switch view {
	case viewDashboard:
		return m.dashView.Refresh()
	case viewDocuments:
		return m.docsView.Refresh()
	case viewPrint:
		return m.printView.Refresh()
	}
	return nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) editCmd(target string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.project.EditForm(context.Background(), target)
		return formReadyMsg{cfg: cfg, err: err}
	}
}

func (m Model) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			path = m.transfer.DefaultPath(m.exportDir)
		}
		out, err := m.transfer.ExportToFile(context.Background(), path)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return importedMsg{path: path, err: m.transfer.ImportFile(context.Background(), path)}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		return resetDoneMsg{err: m.project.Reset(context.Background())}
	}
}

func (m Model) decisionCmd(decision, conditions string) tea.Cmd {
	return func() tea.Msg {
		return decisionSetMsg{err: m.report.SetRecommendation(context.Background(), decision, conditions)}
	}
}

func (m Model) toggleSectionCmd(key string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.report.ToggleSection(context.Background(), key)
		return printview.SettingsMsg{Settings: out, Err: err}
	}
}

func (m Model) toggleAllCmd() tea.Cmd {
	return func() tea.Msg {
		return printview.SettingsMsg{Settings: m.report.ToggleAll(context.Background())}
	}
}

func (m Model) printCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if path == "" {
			rendered, err := m.report.Render(ctx)
			if err != nil {
				return printedMsg{err: err}
			}
			path = filepath.Join(m.exportDir, rendered.FileName)
		}
		out, err := m.report.Write(ctx, path)
		return printedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type projectPortBridge struct{ p projectPort }

func (b projectPortBridge) Snapshot(ctx context.Context) (projectdto.DashboardOutput, error) {
	return b.p.Snapshot(ctx)
}

type reportPortBridge struct{ p reportPort }

func (b reportPortBridge) Settings(ctx context.Context) reportdto.SettingsOutput {
	return b.p.Settings(ctx)
}
func (b reportPortBridge) ToggleSection(ctx context.Context, key string) (reportdto.SettingsOutput, error) {
	return b.p.ToggleSection(ctx, key)
}
func (b reportPortBridge) ToggleAll(ctx context.Context) reportdto.SettingsOutput {
	return b.p.ToggleAll(ctx)
}
func (b reportPortBridge) Render(ctx context.Context) (reportdto.RenderOutput, error) {
	return b.p.Render(ctx)
}
