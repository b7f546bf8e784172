package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

type equipmentLoadedMsg struct {
	seq  int
	list []domain.Equipment
	err  error
}

// equipmentListView is the inventory page: a searchable, category-filterable
// table of equipment. Enter opens the detail view for the selected row.
type equipmentListView struct {
	state   *SharedState
	list    []domain.Equipment
	loading bool
	err     error
	seq     int

	search    textinput.Model
	searching bool
	category  domain.Category // empty means all categories
	cursor    int
}

func newEquipmentListView(state *SharedState) *equipmentListView {
	ti := textinput.New()
	ti.Placeholder = "name or serial number"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return &equipmentListView{state: state, loading: true, search: ti}
}

func (v *equipmentListView) ID() ViewID    { return ViewEquipmentList }
func (v *equipmentListView) Title() string { return "" }

func (v *equipmentListView) capturesInput() bool { return v.searching }

func (v *equipmentListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *equipmentListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *equipmentListView) loadData() tea.Cmd {
	v.seq++
	seq := v.seq
	client := v.state.API
	return func() tea.Msg {
		list, err := client.ListEquipment(context.Background())
		return equipmentLoadedMsg{seq: seq, list: list, err: err}
	}
}

// visible applies the current search term and category filter.
func (v *equipmentListView) visible() []domain.Equipment {
	return domain.FilterEquipment(v.list, v.search.Value(), v.category)
}

func (v *equipmentListView) clampCursor(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *equipmentListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case equipmentLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("equipment load failed", zap.Error(msg.err))
			return v, nil
		}
		v.err = nil
		v.list = msg.list
		v.clampCursor(len(v.visible()))
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *equipmentListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.searching {
		switch msg.Type {
		case tea.KeyEnter:
			v.searching = false
			v.search.Blur()
			return v, nil
		case tea.KeyEsc:
			v.searching = false
			v.search.Blur()
			v.search.SetValue("")
			v.clampCursor(len(v.visible()))
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.cursor = 0
		return v, cmd
	}

	rows := v.visible()
	switch msg.String() {
	case "/":
		v.searching = true
		return v, v.search.Focus()

	case "c":
		v.category = nextCategory(v.category)
		v.cursor = 0
		return v, nil

	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case "down", "j":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
		return v, nil

	case "enter":
		if v.cursor < len(rows) {
			return v, pushView(newEquipmentDetailView(v.state, rows[v.cursor].ID))
		}
		return v, nil

	case "a":
		return v, pushView(newEquipmentFormView(v.state, nil))

	case "x":
		if v.cursor < len(rows) {
			eq := rows[v.cursor]
			return v, pushView(newDeleteConfirmView(v.state,
				fmt.Sprintf("Delete equipment %q?", eq.Name),
				"Equipment deleted",
				func(ctx context.Context) error {
					return v.state.API.DeleteEquipment(ctx, eq.ID)
				}))
		}
		return v, nil

	case "r":
		v.loading = true
		v.err = nil
		return v, v.loadData()
	}
	return v, nil
}

// nextCategory cycles all -> MACHINE -> ... -> OTHER -> all.
func nextCategory(c domain.Category) domain.Category {
	if c == "" {
		return domain.Categories[0]
	}
	for i, cat := range domain.Categories {
		if cat == c {
			if i+1 < len(domain.Categories) {
				return domain.Categories[i+1]
			}
			return ""
		}
	}
	return ""
}

func (v *equipmentListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading equipment...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n  " + formatter.Dim("Press 'r' to retry.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.renderFilterLine())
	b.WriteString("\n\n")

	rows := v.visible()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No equipment matches the current filter."))
		return b.String()
	}

	header := "  " +
		formatter.PadRight(formatter.Dim("NAME"), 24) +
		formatter.PadRight(formatter.Dim("SERIAL"), 16) +
		formatter.PadRight(formatter.Dim("CATEGORY"), 10) +
		formatter.PadRight(formatter.Dim("DEPARTMENT"), 14) +
		formatter.PadRight(formatter.Dim("TEAM"), 16) +
		formatter.PadRight(formatter.Dim("STATUS"), 10) +
		formatter.Dim("REQS")
	b.WriteString(header + "\n")

	for i, eq := range rows {
		marker := "  "
		name := formatter.Truncate(eq.Name, 22)
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("> ")
			name = formatter.Bold(name)
		}
		line := marker +
			formatter.PadRight(name, 24) +
			formatter.PadRight(formatter.Truncate(eq.SerialNumber, 14), 16) +
			formatter.PadRight(string(eq.Category), 10) +
			formatter.PadRight(formatter.Truncate(eq.Department, 12), 14) +
			formatter.PadRight(formatter.Truncate(formatter.Coalesce(eq.MaintenanceTeamName), 14), 16) +
			formatter.PadRight(formatter.ScrapBadge(eq.IsScrapped), 10) +
			fmt.Sprintf("%d/%d", eq.OpenRequestCount, eq.RequestCount)
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (v *equipmentListView) renderFilterLine() string {
	var parts []string
	if v.searching || v.search.Value() != "" {
		parts = append(parts, v.search.View())
	} else {
		parts = append(parts, formatter.Dim("/ search"))
	}
	cat := "all categories"
	if v.category != "" {
		cat = string(v.category)
	}
	parts = append(parts, formatter.StyleBlue.Render("["+cat+"]"))
	parts = append(parts, formatter.Dim(fmt.Sprintf("%d of %d shown", len(v.visible()), len(v.list))))
	return "  " + strings.Join(parts, "  ")
}
