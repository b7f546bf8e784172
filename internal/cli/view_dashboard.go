package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

// dashboardData holds the joined results of the dashboard's three fetches.
type dashboardData struct {
	stats     *domain.Statistics
	equipment []domain.Equipment
	requests  []domain.MaintenanceRequest
}

// dashboardLoadedMsg signals that dashboard data has been loaded.
// seq guards against a stale fetch landing after a newer one was issued.
type dashboardLoadedMsg struct {
	seq  int
	data dashboardData
	err  error
}

// dashboardView is the home screen: KPI cards, recent activity, and an
// equipment summary, all re-fetched together.
type dashboardView struct {
	state   *SharedState
	data    *dashboardData
	loading bool
	err     error
	seq     int
	spin    spinner.Model
}

func newDashboardView(state *SharedState) *dashboardView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleHeader
	return &dashboardView{state: state, loading: true, spin: sp}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("1-5", "switch page")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return tea.Batch(v.loadData(), v.spin.Tick)
}

// loadData issues the three dashboard fetches concurrently and joins them
// before the first populated render.
func (v *dashboardView) loadData() tea.Cmd {
	v.seq++
	seq := v.seq
	client := v.state.API
	return func() tea.Msg {
		ctx := context.Background()
		var data dashboardData

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			stats, err := client.RequestStatistics(ctx)
			data.stats = stats
			return err
		})
		g.Go(func() error {
			equipment, err := client.ListEquipment(ctx)
			data.equipment = equipment
			return err
		})
		g.Go(func() error {
			requests, err := client.ListRequests(ctx)
			data.requests = requests
			return err
		})

		if err := g.Wait(); err != nil {
			return dashboardLoadedMsg{seq: seq, err: err}
		}
		return dashboardLoadedMsg{seq: seq, data: data}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.seq != v.seq {
			return v, nil // stale fetch, view has moved on
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("dashboard load failed", zap.Error(msg.err))
			return v, nil
		}
		v.err = nil
		v.data = &msg.data
		return v, nil

	case refreshViewMsg:
		v.loading = true
		v.err = nil
		return v, tea.Batch(v.loadData(), v.spin.Tick)

	case spinner.TickMsg:
		if !v.loading {
			return v, nil // stop ticking once the data is on screen
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			v.err = nil
			return v, tea.Batch(v.loadData(), v.spin.Tick)
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + v.spin.View() + formatter.Dim("Loading dashboard...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n  " + formatter.Dim("Press 'r' to retry.")
	}
	if v.data == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.renderKPIs())
	b.WriteString("\n")

	left := v.renderRecent()
	right := v.renderEquipmentSummary()

	if v.state.Width >= 84 {
		leftW := v.state.Width * 6 / 10
		rightW := v.state.Width - leftW - 3
		leftCol := lipgloss.NewStyle().Width(leftW).Render(left)
		divider := formatter.Dim("│")
		rightCol := lipgloss.NewStyle().Width(rightW).Render(right)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol))
	} else {
		b.WriteString(left)
		b.WriteString("\n")
		b.WriteString(right)
	}

	return b.String()
}

// kpi is one dashboard metric card.
type kpi struct {
	value string
	label string
	style lipgloss.Style
}

func (v *dashboardView) renderKPIs() string {
	stats := v.data.stats
	cards := []kpi{
		{fmt.Sprintf("%d", stats.TotalRequests), "Total Requests", formatter.StylePurple},
		{fmt.Sprintf("%d", stats.ByStage[domain.StageNew]), "New", formatter.StyleBlue},
		{fmt.Sprintf("%d", stats.ByStage[domain.StageInProgress]), "In Progress", formatter.StyleYellow},
		{fmt.Sprintf("%d", stats.Overdue), "Overdue", formatter.StyleRed},
		{fmt.Sprintf("%d", len(v.data.equipment)), "Equipment", formatter.StyleGreen},
		// Scrapped rate is recomputed from the equipment list, not taken
		// from the statistics endpoint, so it can lag between fetches.
		{fmt.Sprintf("%d%%", domain.ScrappedRate(v.data.equipment)), "Scrapped", formatter.StyleDim},
	}

	var cols []string
	for _, c := range cards {
		card := c.style.Bold(true).Render(c.value) + "\n" + formatter.Dim(c.label)
		cols = append(cols, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(0, 2).
			Render(card))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (v *dashboardView) renderRecent() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Recent Activity") + "\n")

	recent := v.data.requests
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) == 0 {
		b.WriteString("  " + formatter.Dim("No maintenance requests yet."))
		return b.String()
	}

	for _, r := range recent {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			formatter.StageStyle(r.Stage).Render("●"),
			formatter.Bold(r.Subject),
		))
		meta := []string{r.EquipmentName, formatter.StageBadge(r.Stage), formatter.PriorityBadge(r.Priority)}
		if r.IsOverdue {
			meta = append(meta, formatter.OverdueBadge(true))
		}
		b.WriteString("    " + strings.Join(meta, formatter.Dim(" · ")) + "\n")
	}
	return b.String()
}

func (v *dashboardView) renderEquipmentSummary() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Equipment Summary") + "\n")

	counts := domain.CountByCategory(v.data.equipment)
	for _, cat := range domain.Categories {
		if counts[cat] == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			formatter.PadRight(formatter.Dim(string(cat)), 12),
			formatter.Bold(fmt.Sprintf("%d", counts[cat])),
		))
	}

	b.WriteString("\n" + formatter.Header("Request Types") + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		formatter.PadRight(formatter.Dim("Corrective"), 12),
		formatter.Bold(fmt.Sprintf("%d", v.data.stats.ByType[domain.TypeCorrective])),
	))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		formatter.PadRight(formatter.Dim("Preventive"), 12),
		formatter.Bold(fmt.Sprintf("%d", v.data.stats.ByType[domain.TypePreventive])),
	))

	return b.String()
}
