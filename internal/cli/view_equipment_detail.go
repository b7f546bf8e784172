package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gearguard/internal/api"
	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

type equipmentDetailLoadedMsg struct {
	seq       int
	equipment *domain.Equipment
	requests  []domain.MaintenanceRequest
	err       error
}

// equipmentDetailView shows a single piece of equipment with its full
// maintenance history. Pushed on top of the equipment list.
type equipmentDetailView struct {
	state       *SharedState
	equipmentID int

	equipment *domain.Equipment
	requests  []domain.MaintenanceRequest
	loading   bool
	err       error
	seq       int
}

func newEquipmentDetailView(state *SharedState, equipmentID int) *equipmentDetailView {
	return &equipmentDetailView{state: state, equipmentID: equipmentID, loading: true}
}

func (v *equipmentDetailView) ID() ViewID { return ViewEquipmentDetail }

func (v *equipmentDetailView) Title() string {
	if v.equipment != nil {
		return v.equipment.Name
	}
	return fmt.Sprintf("Equipment #%d", v.equipmentID)
}

func (v *equipmentDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new request")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *equipmentDetailView) Init() tea.Cmd {
	return v.loadData()
}

func (v *equipmentDetailView) loadData() tea.Cmd {
	v.seq++
	seq := v.seq
	client := v.state.API
	id := v.equipmentID
	return func() tea.Msg {
		var (
			equipment *domain.Equipment
			requests  []domain.MaintenanceRequest
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			eq, err := client.GetEquipment(ctx, id)
			equipment = eq
			return err
		})
		g.Go(func() error {
			reqs, err := client.EquipmentRequests(ctx, id)
			requests = reqs
			return err
		})
		if err := g.Wait(); err != nil {
			return equipmentDetailLoadedMsg{seq: seq, err: err}
		}
		return equipmentDetailLoadedMsg{seq: seq, equipment: equipment, requests: requests}
	}
}

func (v *equipmentDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case equipmentDetailLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("equipment detail load failed",
				zap.Int("equipment_id", v.equipmentID), zap.Error(msg.err))
			return v, nil
		}
		v.err = nil
		v.equipment = msg.equipment
		v.requests = msg.requests
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			if v.equipment != nil {
				return v, pushView(newEquipmentFormView(v.state, v.equipment))
			}
		case "n":
			if v.equipment != nil {
				return v, pushView(newRequestFormView(v.state, v.equipment.ID))
			}
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *equipmentDetailView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading equipment...")
	}
	if v.err != nil {
		msg := "Error: " + v.err.Error()
		if api.IsNotFound(v.err) {
			msg = "Equipment not found. It may have been deleted."
		}
		return "\n  " + formatter.StyleRed.Render(msg) +
			"\n  " + formatter.Dim("Press 'r' to retry or esc to go back.")
	}
	if v.equipment == nil {
		return ""
	}

	eq := v.equipment
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.Bold(eq.Name) + "  " + formatter.ScrapBadge(eq.IsScrapped) + "\n\n")

	field := func(label, value string) {
		b.WriteString("  " + formatter.PadRight(formatter.Dim(label), 18) + formatter.Coalesce(value) + "\n")
	}
	field("Serial Number", eq.SerialNumber)
	field("Category", string(eq.Category))
	field("Department", eq.Department)
	field("Assigned To", eq.AssignedEmployee)
	field("Team", eq.MaintenanceTeamName)
	field("Technician", eq.DefaultTechnicianName)
	field("Location", eq.Location)
	field("Purchased", formatter.ShortDate(eq.PurchaseDate))
	field("Warranty Until", formatter.ShortDate(eq.WarrantyExpiry))
	if eq.Notes != "" {
		field("Notes", eq.Notes)
	}

	open := len(domain.OpenRequests(v.requests))
	b.WriteString("\n")
	b.WriteString("  " + formatter.Header(fmt.Sprintf("Maintenance History (%d open / %d total)", open, len(v.requests))) + "\n")

	if len(v.requests) == 0 {
		b.WriteString("  " + formatter.Dim("No maintenance requests for this equipment."))
		return b.String()
	}

	for _, r := range v.requests {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			formatter.StageStyle(r.Stage).Render("●"),
			formatter.Bold(r.Subject),
		))
		meta := []string{
			formatter.StageBadge(r.Stage),
			formatter.PriorityBadge(r.Priority),
			string(r.RequestType),
			formatter.ShortDate(r.ScheduledDate),
		}
		if r.AssignedTechnicianName != "" {
			meta = append(meta, r.AssignedTechnicianName)
		}
		if r.IsOverdue {
			meta = append(meta, formatter.OverdueBadge(true))
		}
		b.WriteString("    " + strings.Join(meta, formatter.Dim(" · ")) + "\n")
	}
	return b.String()
}
