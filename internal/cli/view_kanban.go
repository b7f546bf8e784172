package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"gearguard/internal/board"
	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

type requestsLoadedMsg struct {
	seq  int
	list []domain.MaintenanceRequest
	err  error
}

type requestMovedMsg struct {
	subject string
	to      domain.Stage
	err     error
}

// requestsView is the kanban page: one column per stage, cards moved by
// picking them up and dropping them on another column. A drop issues a
// single stage update followed by a full re-fetch; a failed drop leaves
// the board as fetched and shows the error.
type requestsView struct {
	state   *SharedState
	list    []domain.MaintenanceRequest
	columns []board.Column
	loading bool
	err     error
	seq     int

	col int
	row int
	// held is the picked-up card, nil when just browsing.
	held *domain.MaintenanceRequest
}

func newRequestsView(state *SharedState) *requestsView {
	return &requestsView{state: state, loading: true}
}

func (v *requestsView) ID() ViewID    { return ViewRequests }
func (v *requestsView) Title() string { return "" }

func (v *requestsView) ShortHelp() []key.Binding {
	if v.held != nil {
		return []key.Binding{
			key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "target column")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick up")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "assign")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *requestsView) Init() tea.Cmd {
	return v.loadData()
}

func (v *requestsView) loadData() tea.Cmd {
	v.seq++
	seq := v.seq
	client := v.state.API
	return func() tea.Msg {
		list, err := client.ListRequests(context.Background())
		return requestsLoadedMsg{seq: seq, list: list, err: err}
	}
}

// selected returns the card under the cursor, or nil.
func (v *requestsView) selected() *domain.MaintenanceRequest {
	if v.col >= len(v.columns) {
		return nil
	}
	cards := v.columns[v.col].Requests
	if v.row >= len(cards) {
		return nil
	}
	return &cards[v.row]
}

func (v *requestsView) clampCursor() {
	if len(v.columns) == 0 {
		v.col, v.row = 0, 0
		return
	}
	if v.col >= len(v.columns) {
		v.col = len(v.columns) - 1
	}
	if n := len(v.columns[v.col].Requests); v.row >= n {
		v.row = n - 1
	}
	if v.row < 0 {
		v.row = 0
	}
}

func (v *requestsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("requests load failed", zap.Error(msg.err))
			return v, nil
		}
		v.err = nil
		v.list = msg.list
		v.columns = board.Group(msg.list)
		v.clampCursor()
		return v, nil

	case requestMovedMsg:
		if msg.err != nil {
			v.state.Log.Warn("stage update failed",
				zap.String("to", string(msg.to)), zap.Error(msg.err))
			return v, notifyError("Could not move request: " + msg.err.Error())
		}
		return v, tea.Batch(
			notify(fmt.Sprintf("Moved %q to %s", msg.subject, msg.to)),
			func() tea.Msg { return refreshViewMsg{} },
		)

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *requestsView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.held != nil {
		switch msg.String() {
		case "left", "h":
			if v.col > 0 {
				v.col--
			}
		case "right", "l":
			if v.col < len(v.columns)-1 {
				v.col++
			}
		case "enter", " ":
			return v.dropHeld()
		case "esc":
			v.held = nil
			v.clampCursor()
		}
		return v, nil
	}

	switch msg.String() {
	case "left", "h":
		if v.col > 0 {
			v.col--
			v.clampCursor()
		}
	case "right", "l":
		if v.col < len(v.columns)-1 {
			v.col++
			v.clampCursor()
		}
	case "up", "k":
		if v.row > 0 {
			v.row--
		}
	case "down", "j":
		if v.col < len(v.columns) && v.row < len(v.columns[v.col].Requests)-1 {
			v.row++
		}
	case "enter", " ":
		if card := v.selected(); card != nil {
			held := *card
			v.held = &held
		}
	case "a":
		return v, pushView(newRequestFormView(v.state, 0))
	case "t":
		if card := v.selected(); card != nil {
			return v, pushView(newAssignTechnicianView(v.state, *card))
		}
	case "x":
		if card := v.selected(); card != nil {
			req := *card
			return v, pushView(newDeleteConfirmView(v.state,
				fmt.Sprintf("Delete request %q?", req.Subject),
				"Request deleted",
				func(ctx context.Context) error {
					return v.state.API.DeleteRequest(ctx, req.ID)
				}))
		}
	case "r":
		v.loading = true
		v.err = nil
		return v, v.loadData()
	}
	return v, nil
}

// dropHeld resolves the drop onto the currently highlighted column. Dropping
// a card back on its own column releases it without any API call.
func (v *requestsView) dropHeld() (tea.Model, tea.Cmd) {
	card := *v.held
	v.held = nil
	target := v.columns[v.col].Stage

	move := board.Drop(card, target)
	if move.Noop {
		v.clampCursor()
		return v, nil
	}

	client := v.state.API
	return v, func() tea.Msg {
		err := client.UpdateRequestStage(context.Background(), move.RequestID, move.To)
		return requestMovedMsg{subject: card.Subject, to: move.To, err: err}
	}
}

func (v *requestsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading requests...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n  " + formatter.Dim("Press 'r' to retry.")
	}

	colWidth := v.state.Width/len(domain.Stages) - 2
	if colWidth < 18 {
		colWidth = 18
	}

	var rendered []string
	for i, col := range v.columns {
		rendered = append(rendered, v.renderColumn(i, col, colWidth))
	}

	out := "\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if v.held != nil {
		out += "\n  " + formatter.StyleYellow.Render(
			fmt.Sprintf("Holding %q. Move to a column and press enter to drop.", v.held.Subject))
	}
	return out
}

func (v *requestsView) renderColumn(idx int, col board.Column, width int) string {
	style := formatter.StageStyle(col.Stage)

	header := style.Bold(true).Render(col.Stage.Label()) +
		formatter.Dim(fmt.Sprintf(" (%d)", len(col.Requests)))
	if idx == v.col {
		header = style.Bold(true).Underline(true).Render(col.Stage.Label()) +
			formatter.Dim(fmt.Sprintf(" (%d)", len(col.Requests)))
	}

	var b strings.Builder
	b.WriteString(header + "\n")

	if len(col.Requests) == 0 {
		b.WriteString(formatter.Dim("  (empty)") + "\n")
	}

	for j, card := range col.Requests {
		selected := idx == v.col && j == v.row && v.held == nil
		heldHere := v.held != nil && v.held.ID == card.ID

		marker := "  "
		subject := formatter.Truncate(card.Subject, width-6)
		switch {
		case heldHere:
			marker = formatter.StyleYellow.Render("◆ ")
			subject = formatter.StyleYellow.Render(subject)
		case selected:
			marker = formatter.StyleHeader.Render("> ")
			subject = formatter.Bold(subject)
		}

		b.WriteString(marker + subject + "\n")
		meta := formatter.PriorityBadge(card.Priority)
		if card.IsOverdue {
			meta += " " + formatter.OverdueBadge(true)
		}
		b.WriteString("  " + meta + "\n")
		b.WriteString("  " + formatter.Dim(formatter.Truncate(card.EquipmentName, width-4)) + "\n")
	}

	border := lipgloss.NormalBorder()
	borderColor := formatter.ColorDim
	if idx == v.col && v.held != nil {
		borderColor = formatter.ColorYellow
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(v.state.ContentHeight() - 2).
		Border(border).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(b.String())
}
