package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gearguard/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI. The bottom of the view
// stack is the current page (dashboard, equipment, requests, calendar,
// teams); detail and form views are pushed on top of it.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient outcome of the last mutation, cleared on the next key press.
	notice    string
	noticeErr bool
}

func newAppModel(state *SharedState) appModel {
	m := appModel{state: state}
	m.viewStack = []View{newDashboardView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.notice = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		m.notice = ""
		m.viewStack = []View{msg.view}
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast to every view on the stack so pages below a form or
		// detail view reload after a mutation made above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case formDoneMsg:
		// Pop the form, then refresh everything underneath.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.notice = msg.notice
		m.noticeErr = false
		return m, func() tea.Msg { return refreshViewMsg{} }

	case noticeMsg:
		m.notice = msg.text
		m.noticeErr = msg.isErr
		return m, nil
	}

	// Forward other messages (load results, ticks, spinner frames)
	// to the active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// A fresh key press dismisses the last mutation notice.
	m.notice = ""

	// Views with a focused text input (forms, list search) receive every
	// key, including the page-switch digits.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "1":
		return m.switchTo(ViewDashboard, func() View { return newDashboardView(m.state) })
	case "2":
		return m.switchTo(ViewEquipmentList, func() View { return newEquipmentListView(m.state) })
	case "3":
		return m.switchTo(ViewRequests, func() View { return newRequestsView(m.state) })
	case "4":
		return m.switchTo(ViewCalendar, func() View { return newCalendarView(m.state) })
	case "5":
		return m.switchTo(ViewTeams, func() View { return newTeamsView(m.state) })
	}

	if msg.Type == tea.KeyEsc && len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

// switchTo replaces the whole stack with a fresh page view, unless that
// page is already the sole active view.
func (m appModel) switchTo(id ViewID, build func() View) (tea.Model, tea.Cmd) {
	if len(m.viewStack) == 1 && m.viewStack[0].ID() == id {
		return m, nil
	}
	v := build()
	m.notice = ""
	m.viewStack = []View{v}
	return m, v.Init()
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderNotice())
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

var pageTabs = []struct {
	id    ViewID
	key   string
	label string
}{
	{ViewDashboard, "1", "Dashboard"},
	{ViewEquipmentList, "2", "Equipment"},
	{ViewRequests, "3", "Requests"},
	{ViewCalendar, "4", "Calendar"},
	{ViewTeams, "5", "Teams"},
}

func (m *appModel) renderHeader() string {
	title := formatter.StyleHeader.Render("GearGuard")

	rootID := ViewDashboard
	if len(m.viewStack) > 0 {
		rootID = m.viewStack[0].ID()
	}

	var tabs []string
	for _, t := range pageTabs {
		label := t.key + " " + t.label
		if t.id == rootID {
			tabs = append(tabs, formatter.Bold(label))
		} else {
			tabs = append(tabs, formatter.Dim(label))
		}
	}
	header := title + "  " + strings.Join(tabs, formatter.Dim(" · "))

	// Breadcrumb for pushed views (detail, forms).
	if len(m.viewStack) > 1 {
		var crumbs []string
		for _, v := range m.viewStack[1:] {
			if t := v.Title(); t != "" {
				crumbs = append(crumbs, t)
			}
		}
		if len(crumbs) > 0 {
			header += " " + formatter.Dim("› "+strings.Join(crumbs, " › "))
		}
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return "  " + formatter.StyleRed.Render(m.notice)
	}
	return "  " + formatter.StyleGreen.Render(m.notice)
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	hints = append(hints, formatter.Dim("q: quit"))

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// RunTUI starts the interactive dashboard and blocks until it exits.
func RunTUI(state *SharedState) error {
	p := tea.NewProgram(newAppModel(state), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
