package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg swaps the root page at the bottom of the stack,
// dropping anything pushed above it.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg tells every view on the stack to re-fetch its data.
// Broadcast after each mutation: the consistency model is always a full
// re-fetch, never a local patch.
type refreshViewMsg struct{}

// noticeMsg carries a transient status-line message, typically the outcome
// of a mutation. Error notices render in red.
type noticeMsg struct {
	text  string
	isErr bool
}

// formDoneMsg is sent when a form view finished successfully. The appModel
// pops the form and broadcasts a refresh.
type formDoneMsg struct {
	notice string
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func switchPage(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func notifyError(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: true} }
}
