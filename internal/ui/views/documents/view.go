package documents

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	projectdto "scopdash/internal/modules/project/dto"
	"scopdash/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Snapshot(ctx context.Context) (projectdto.DashboardOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Documents []projectdto.DocumentOutput
	Completed int
	Total     int
	Err       error
}

// ─── list item ───────────────────────────────────────────────────────────────

type documentItem struct {
	doc projectdto.DocumentOutput
}

func (i documentItem) Title() string { return i.doc.Title }
func (i documentItem) Description() string {
	return theme.Status(i.doc.Status).Render(i.doc.StatusLabel)
}
func (i documentItem) FilterValue() string { return i.doc.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	list   list.Model
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Deliverables and data"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

// Refresh reloads the checklist from the store.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Snapshot(context.Background())
		return LoadedMsg{Documents: out.Documents, Completed: out.Metrics.StepsCompleted, Total: out.Metrics.TotalSteps, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-1, 1))

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Deliverables and data: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Deliverables and data (%d/%d completed)", msg.Completed, msg.Total)
		items := make([]list.Item, len(msg.Documents))
		for i, d := range msg.Documents {
			items[i] = documentItem{doc: d}
		}
		cmds = append(cmds, m.list.SetItems(items))
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return m.list.View() + "\n" + theme.Muted.Render("enter: change status  /: filter")
}

// SelectedDocumentID returns the highlighted document, if any.
func (m Model) SelectedDocumentID() (int, bool) {
	if item, ok := m.list.SelectedItem().(documentItem); ok {
		return item.doc.ID, true
	}
	return 0, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
