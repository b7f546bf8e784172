package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"gearguard/internal/cli/formatter"
)

type formOptionsLoadedMsg struct {
	seq int
	err error
}

type formSubmitResultMsg struct {
	seq    int
	notice string
	err    error
}

// formView wraps a huh.Form as a stack view. The form is produced by build,
// a closure over pointer-bound field values: when a submit fails, the form is
// rebuilt from the same pointers so the user's input survives and the modal
// stays open with the error shown above it.
type formView struct {
	state    *SharedState
	titleStr string

	// load optionally fetches select options before the form can be built.
	load func(context.Context) error
	// submit performs the mutation and returns the success notice.
	submit func(context.Context) (string, error)
	build  func() *huh.Form

	form       *huh.Form
	loading    bool
	submitting bool
	loadErr    error
	submitErr  error
	seq        int
}

func newFormView(state *SharedState, title string,
	load func(context.Context) error,
	build func() *huh.Form,
	submit func(context.Context) (string, error),
) *formView {
	return &formView{
		state:    state,
		titleStr: title,
		load:     load,
		build:    build,
		submit:   submit,
	}
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.titleStr }

// Forms own the keyboard entirely while on top of the stack.
func (v *formView) capturesInput() bool { return true }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *formView) Init() tea.Cmd {
	if v.load != nil {
		v.loading = true
		v.seq++
		seq := v.seq
		load := v.load
		return func() tea.Msg {
			return formOptionsLoadedMsg{seq: seq, err: load(context.Background())}
		}
	}
	v.form = v.build()
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formOptionsLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.loadErr = msg.err
			return v, nil
		}
		v.form = v.build()
		return v, v.form.Init()

	case formSubmitResultMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.submitting = false
		if msg.err != nil {
			// Keep the modal open: rebuild from the same bound values so
			// nothing the user typed is lost.
			v.submitErr = msg.err
			v.form = v.build()
			return v, v.form.Init()
		}
		return v, func() tea.Msg { return formDoneMsg{notice: msg.notice} }

	case refreshViewMsg:
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
	}

	if v.form == nil || v.submitting {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.submitting = true
		v.seq++
		seq := v.seq
		submit := v.submit
		return v, tea.Batch(cmd, func() tea.Msg {
			notice, err := submit(context.Background())
			return formSubmitResultMsg{seq: seq, notice: notice, err: err}
		})
	}
	return v, cmd
}

func (v *formView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading form...")
	}
	if v.loadErr != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.loadErr.Error()) +
			"\n  " + formatter.Dim("Press esc to go back.")
	}
	if v.submitting {
		return "\n  " + formatter.Dim("Saving...")
	}
	if v.form == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.submitErr != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Could not save: "+v.submitErr.Error()) + "\n\n")
	}
	b.WriteString(v.form.View())
	return b.String()
}
