package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

type teamsLoadedMsg struct {
	seq         int
	teams       []domain.Team
	technicians []domain.Technician
	users       []domain.User
	err         error
}

// teamsView manages maintenance teams and their technicians side by side:
// the left pane lists teams, the right pane the selected team's members.
type teamsView struct {
	state *SharedState

	teams       []domain.Team
	technicians []domain.Technician
	users       []domain.User
	loading     bool
	err         error
	seq         int

	cursor int
}

func newTeamsView(state *SharedState) *teamsView {
	return &teamsView{state: state, loading: true}
}

func (v *teamsView) ID() ViewID    { return ViewTeams }
func (v *teamsView) Title() string { return "" }

func (v *teamsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add team")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add technician")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *teamsView) Init() tea.Cmd {
	return v.loadData()
}

func (v *teamsView) loadData() tea.Cmd {
	v.seq++
	seq := v.seq
	client := v.state.API
	return func() tea.Msg {
		var msg teamsLoadedMsg
		msg.seq = seq
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			teams, err := client.ListTeams(ctx)
			msg.teams = teams
			return err
		})
		g.Go(func() error {
			technicians, err := client.ListTechnicians(ctx)
			msg.technicians = technicians
			return err
		})
		g.Go(func() error {
			users, err := client.ListUsers(ctx)
			msg.users = users
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

func (v *teamsView) selectedTeam() *domain.Team {
	if v.cursor < len(v.teams) {
		return &v.teams[v.cursor]
	}
	return nil
}

func (v *teamsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case teamsLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("teams load failed", zap.Error(msg.err))
			return v, nil
		}
		v.err = nil
		v.teams = msg.teams
		v.technicians = msg.technicians
		v.users = msg.users
		if v.cursor >= len(v.teams) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.teams)-1 {
				v.cursor++
			}
		case "a":
			return v, pushView(newTeamFormView(v.state, nil))
		case "e":
			if team := v.selectedTeam(); team != nil {
				return v, pushView(newTeamFormView(v.state, team))
			}
		case "t":
			return v, pushView(newTechnicianFormView(v.state))
		case "x":
			if team := v.selectedTeam(); team != nil {
				t := *team
				return v, pushView(newDeleteConfirmView(v.state,
					fmt.Sprintf("Delete team %q?", t.Name),
					"Team deleted",
					func(ctx context.Context) error {
						return v.state.API.DeleteTeam(ctx, t.ID)
					}))
			}
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *teamsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading teams...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n  " + formatter.Dim("Press 'r' to retry.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.renderStats())
	b.WriteString("\n")

	left := v.renderTeamList()
	right := v.renderMembers()

	leftW := v.state.Width * 4 / 10
	if leftW < 28 {
		leftW = 28
	}
	rightW := v.state.Width - leftW - 3
	if rightW < 20 {
		rightW = 20
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftW).Render(left),
		" "+formatter.Dim("│")+" ",
		lipgloss.NewStyle().Width(rightW).Render(right),
	))
	return b.String()
}

func (v *teamsView) renderStats() string {
	stats := domain.ComputeTeamStats(v.teams, v.technicians, v.users)
	parts := []string{
		formatter.Bold(fmt.Sprintf("%d", stats.TotalTeams)) + formatter.Dim(" teams"),
		formatter.Bold(fmt.Sprintf("%d", stats.TotalTechnicians)) + formatter.Dim(" technicians"),
		formatter.Bold(fmt.Sprintf("%d", stats.AvailableUsers)) + formatter.Dim(" available users"),
		formatter.Bold(fmt.Sprintf("%d", stats.AvgTeamSize)) + formatter.Dim(" avg team size"),
	}
	return "  " + strings.Join(parts, formatter.Dim("  ·  ")) + "\n"
}

func (v *teamsView) renderTeamList() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Teams") + "\n")

	if len(v.teams) == 0 {
		b.WriteString("  " + formatter.Dim("No teams yet. Press 'a' to add one."))
		return b.String()
	}

	for i, team := range v.teams {
		marker := "  "
		name := team.Name
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("> ")
			name = formatter.Bold(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, name,
			formatter.Dim(fmt.Sprintf("(%d)", team.TechnicianCount))))
		if team.Description != "" {
			b.WriteString("    " + formatter.Dim(formatter.Truncate(team.Description, 40)) + "\n")
		}
	}
	return b.String()
}

func (v *teamsView) renderMembers() string {
	var b strings.Builder

	team := v.selectedTeam()
	if team == nil {
		b.WriteString(formatter.Header("Technicians") + "\n")
		b.WriteString("  " + formatter.Dim("Select a team to see its members."))
		return b.String()
	}

	members := domain.TechniciansForTeam(v.technicians, team.ID)
	b.WriteString(formatter.Header(team.Name+" Technicians") + "\n")

	if len(members) == 0 {
		b.WriteString("  " + formatter.Dim("No technicians on this team."))
		return b.String()
	}

	for _, t := range members {
		name := formatter.Coalesce(t.User.FullName, t.User.Username)
		b.WriteString("  " + formatter.Bold(name) + "\n")
		meta := []string{}
		if t.Specialization != "" {
			meta = append(meta, t.Specialization)
		}
		if t.Phone != "" {
			meta = append(meta, t.Phone)
		}
		if t.User.Email != "" {
			meta = append(meta, t.User.Email)
		}
		if len(meta) > 0 {
			b.WriteString("    " + formatter.Dim(strings.Join(meta, " · ")) + "\n")
		}
	}
	return b.String()
}
