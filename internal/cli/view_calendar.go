package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gearguard/internal/calendar"
	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

type calendarLoadedMsg struct {
	seq  int
	list []domain.MaintenanceRequest
	err  error
}

// calendarView shows scheduled maintenance on a month grid. Month paging is
// purely local: the full scheduled set is fetched once and filtered per day.
type calendarView struct {
	state   *SharedState
	list    []domain.MaintenanceRequest
	counts  map[string]int
	loading bool
	err     error
	seq     int

	month    calendar.Month
	selected int // selected day of month, 1-based
}

func newCalendarView(state *SharedState) *calendarView {
	now := time.Now()
	return &calendarView{
		state:    state,
		loading:  true,
		month:    calendar.MonthOf(now),
		selected: now.Day(),
	}
}

func (v *calendarView) ID() ViewID    { return ViewCalendar }
func (v *calendarView) Title() string { return "" }

func (v *calendarView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left"), key.WithHelp("arrows", "select day")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p/n", "month")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add request")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *calendarView) Init() tea.Cmd {
	return v.loadData()
}

func (v *calendarView) loadData() tea.Cmd {
	v.seq++
	seq := v.seq
	client := v.state.API
	return func() tea.Msg {
		list, err := client.CalendarRequests(context.Background())
		return calendarLoadedMsg{seq: seq, list: list, err: err}
	}
}

func (v *calendarView) daysInMonth() int {
	return time.Date(v.month.Year, v.month.Month, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
}

func (v *calendarView) clampSelected() {
	if n := v.daysInMonth(); v.selected > n {
		v.selected = n
	}
	if v.selected < 1 {
		v.selected = 1
	}
}

func (v *calendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("calendar load failed", zap.Error(msg.err))
			return v, nil
		}
		v.err = nil
		v.list = msg.list
		v.counts = calendar.CountByDay(msg.list)
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			v.selected--
			if v.selected < 1 {
				v.month = v.month.Prev()
				v.selected = v.daysInMonth()
			}
		case "right", "l":
			v.selected++
			if v.selected > v.daysInMonth() {
				v.month = v.month.Next()
				v.selected = 1
			}
		case "up", "k":
			v.selected -= 7
			if v.selected < 1 {
				v.selected = 1
			}
		case "down", "j":
			v.selected += 7
			v.clampSelected()
		case "p":
			v.month = v.month.Prev()
			v.clampSelected()
		case "n":
			v.month = v.month.Next()
			v.clampSelected()
		case "a":
			return v, pushView(newRequestFormView(v.state, 0))
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *calendarView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading calendar...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n  " + formatter.Dim("Press 'r' to retry.")
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render(v.month.Title()) + "\n\n")
	b.WriteString(v.renderGrid())
	b.WriteString("\n")
	b.WriteString(v.renderDayDetail())
	return b.String()
}

const calendarCellWidth = 8

func (v *calendarView) renderGrid() string {
	var b strings.Builder

	b.WriteString("  ")
	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(formatter.PadRight(formatter.Dim(wd), calendarCellWidth))
	}
	b.WriteString("\n")

	days := v.month.Days()
	for i, day := range days {
		if i%7 == 0 {
			b.WriteString("  ")
		}
		b.WriteString(v.renderCell(day))
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	if len(days)%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (v *calendarView) renderCell(day calendar.Day) string {
	if day.Blank() {
		return strings.Repeat(" ", calendarCellWidth)
	}

	label := fmt.Sprintf("%2d", day.DayOfMonth)
	count := v.counts[day.Date.Format("2006-01-02")]

	cell := label
	if count > 0 {
		cell += formatter.StyleYellow.Render(fmt.Sprintf("·%d", count))
	}
	if day.DayOfMonth == v.selected {
		cell = formatter.StyleHeader.Render("[") + formatter.Bold(label) +
			formatter.StyleHeader.Render("]")
		if count > 0 {
			cell += formatter.StyleYellow.Render(fmt.Sprintf("·%d", count))
		}
	}
	return formatter.PadRight(cell, calendarCellWidth)
}

func (v *calendarView) renderDayDetail() string {
	date := time.Date(v.month.Year, v.month.Month, v.selected, 0, 0, 0, 0, time.UTC)
	scheduled := calendar.RequestsOn(v.list, date)

	var b strings.Builder
	b.WriteString("  " + formatter.Header(date.Format("Monday, January 2")) + "\n")

	if len(scheduled) == 0 {
		b.WriteString("  " + formatter.Dim("Nothing scheduled."))
		return b.String()
	}

	for _, r := range scheduled {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			formatter.StageStyle(r.Stage).Render("●"),
			formatter.Bold(r.Subject),
		))
		meta := []string{
			formatter.ScheduleStamp(r.ScheduledDate),
			r.EquipmentName,
			formatter.StageBadge(r.Stage),
			formatter.PriorityBadge(r.Priority),
		}
		b.WriteString("    " + strings.Join(meta, formatter.Dim(" · ")) + "\n")
	}
	return b.String()
}
