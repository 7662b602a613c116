package components

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "scopdash/internal/platform/errors"
	"scopdash/internal/platform/form"
	"scopdash/internal/ui/theme"
)

// FormClosedMsg is emitted when the modal goes away, after a successful save
// or a cancel.
type FormClosedMsg struct {
	Title string
	Saved bool
}

type formSavedMsg struct {
	gen int
	err error
}

type formTickMsg struct{ gen int }

type fieldInput struct {
	field  form.Field
	text   textinput.Model
	area   textarea.Model
	choice int
}

func (f fieldInput) value() string {
	switch f.field.Kind {
	case form.KindTextarea:
		return f.area.Value()
	case form.KindSelect:
		if len(f.field.Options) == 0 {
			return ""
		}
		return f.field.Options[f.choice].Value
	default:
		return f.text.Value()
	}
}

// FormModal renders a form.Workflow and feeds key input into it. The workflow
// owns validation, saving and the success auto-close; the modal only mirrors
// its state.
type FormModal struct {
	wf           *form.Workflow
	successDelay time.Duration
	inputs       []fieldInput
	focus        int
	spinner      spinner.Model
	visible      bool
	title        string
	gen          int
	width        int
}

func NewFormModal(wf *form.Workflow, successDelay time.Duration) FormModal {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return FormModal{wf: wf, successDelay: successDelay, spinner: sp}
}

func (m FormModal) Visible() bool { return m.visible }

func (m *FormModal) SetWidth(w int) {
	m.width = w
	for i := range m.inputs {
		switch m.inputs[i].field.Kind {
		case form.KindTextarea:
			m.inputs[i].area.SetWidth(m.inputWidth())
		case form.KindSelect:
		default:
			m.inputs[i].text.Width = m.inputWidth()
		}
	}
}

// Open starts editing cfg. It fails when a save is still running.
func (m *FormModal) Open(cfg form.Config) (tea.Cmd, error) {
	if err := m.wf.Open(cfg); err != nil {
		return nil, err
	}
	view := m.wf.View()
	m.inputs = make([]fieldInput, 0, len(view.Fields))
	for _, f := range view.Fields {
		in := fieldInput{field: f}
		val := view.Values[f.Key]
		switch f.Kind {
		case form.KindTextarea:
			in.area = textarea.New()
			in.area.ShowLineNumbers = false
			in.area.SetWidth(m.inputWidth())
			in.area.SetHeight(5)
			in.area.SetValue(val)
		case form.KindSelect:
			for i, opt := range f.Options {
				if opt.Value == val {
					in.choice = i
				}
			}
		default:
			in.text = textinput.New()
			in.text.Placeholder = f.Placeholder
			in.text.Width = m.inputWidth()
			in.text.SetValue(val)
		}
		m.inputs = append(m.inputs, in)
	}
	m.gen++
	m.title = view.Title
	m.visible = true
	m.focus = 0
	return m.focusCurrent(), nil
}

func (m FormModal) Update(msg tea.Msg) (FormModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	switch msg := msg.(type) {
	case formSavedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		switch {
		case msg.err == nil:
			return m, m.tick(m.successDelay + 20*time.Millisecond)
		case errors.Is(msg.err, apperrors.ErrSaveCancelled):
			return m, nil
		default:
			// Field and save errors are rendered from the workflow view.
			return m, m.focusCurrent()
		}

	case formTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if m.wf.State() == form.StateClosed {
			return m.close(true)
		}
		return m, m.tick(50 * time.Millisecond)

	case spinner.TickMsg:
		if m.wf.State() == form.StateSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m FormModal) handleKey(msg tea.KeyMsg) (FormModal, tea.Cmd) {
	if msg.String() == "esc" {
		m.wf.Cancel()
		return m.close(false)
	}
	if m.wf.State() != form.StateOpen || len(m.inputs) == 0 {
		return m, nil
	}

	cur := &m.inputs[m.focus]
	switch msg.String() {
	case "tab", "down":
		if msg.String() == "down" && cur.field.Kind == form.KindTextarea {
			break
		}
		m.blurCurrent()
		m.focus = (m.focus + 1) % len(m.inputs)
		return m, m.focusCurrent()
	case "shift+tab", "up":
		if msg.String() == "up" && cur.field.Kind == form.KindTextarea {
			break
		}
		m.blurCurrent()
		m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		return m, m.focusCurrent()
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		if cur.field.Kind != form.KindTextarea {
			return m, m.submit()
		}
	case "left", "right":
		if cur.field.Kind == form.KindSelect && len(cur.field.Options) > 0 {
			n := len(cur.field.Options)
			if msg.String() == "left" {
				cur.choice = (cur.choice + n - 1) % n
			} else {
				cur.choice = (cur.choice + 1) % n
			}
			_ = m.wf.Set(cur.field.Key, cur.value())
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch cur.field.Kind {
	case form.KindTextarea:
		cur.area, cmd = cur.area.Update(msg)
	case form.KindSelect:
		return m, nil
	default:
		cur.text, cmd = cur.text.Update(msg)
	}
	_ = m.wf.Set(cur.field.Key, cur.value())
	return m, cmd
}

func (m FormModal) View() string {
	if !m.visible {
		return ""
	}
	view := m.wf.View()
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.title) + "\n")
	if view.Description != "" {
		sb.WriteString(theme.Muted.Render(view.Description) + "\n")
	}
	for i, in := range m.inputs {
		label := in.field.Label
		if in.field.Required {
			label += " *"
		}
		if i == m.focus {
			sb.WriteString("\n" + theme.Hot.Render(label) + "\n")
		} else {
			sb.WriteString("\n" + theme.Muted.Render(label) + "\n")
		}
		switch in.field.Kind {
		case form.KindTextarea:
			sb.WriteString(in.area.View() + "\n")
		case form.KindSelect:
			opt := ""
			if len(in.field.Options) > 0 {
				opt = in.field.Options[in.choice].Label
			}
			sb.WriteString("◀ " + theme.Status(in.value()).Render(opt) + " ▶\n")
		default:
			sb.WriteString(in.text.View() + "\n")
		}
		if msg, ok := view.Errors[in.field.Key]; ok {
			sb.WriteString(theme.Bad.Render("  "+msg) + "\n")
		}
	}
	if view.General != "" {
		sb.WriteString("\n" + theme.Bad.Render(view.General) + "\n")
	}
	sb.WriteString("\n")
	switch view.State {
	case form.StateSaving:
		sb.WriteString(m.spinner.View() + " Saving…")
	case form.StateSuccess:
		sb.WriteString(theme.Good.Render("✓ Saved"))
	default:
		sb.WriteString(theme.Muted.Render("tab: next field  enter/ctrl+s: save  esc: cancel"))
	}
	w := m.width
	if w < 30 {
		w = 72
	}
	return theme.Modal.Width(w).Render(sb.String())
}

func (m FormModal) inputWidth() int {
	if m.width < 30 {
		return 60
	}
	return m.width - 8
}

func (m FormModal) submit() tea.Cmd {
	wf, gen := m.wf, m.gen
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return formSavedMsg{gen: gen, err: wf.Submit(context.Background())}
	})
}

func (m FormModal) tick(d time.Duration) tea.Cmd {
	gen := m.gen
	return tea.Tick(d, func(time.Time) tea.Msg { return formTickMsg{gen: gen} })
}

func (m FormModal) close(saved bool) (FormModal, tea.Cmd) {
	m.visible = false
	m.gen++
	title := m.title
	m.inputs = nil
	return m, func() tea.Msg { return FormClosedMsg{Title: title, Saved: saved} }
}

func (m *FormModal) focusCurrent() tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	in := &m.inputs[m.focus]
	switch in.field.Kind {
	case form.KindTextarea:
		return in.area.Focus()
	case form.KindSelect:
		return nil
	default:
		return in.text.Focus()
	}
}

func (m *FormModal) blurCurrent() {
	if len(m.inputs) == 0 {
		return
	}
	in := &m.inputs[m.focus]
	switch in.field.Kind {
	case form.KindTextarea:
		in.area.Blur()
	case form.KindSelect:
	default:
		in.text.Blur()
	}
}
