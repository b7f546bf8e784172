package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/sync/errgroup"

	"gearguard/internal/api"
	"gearguard/internal/domain"
)

// requestFields holds the form-bound values for the request form.
type requestFields struct {
	subject     string
	description string
	equipment   string
	requestType string
	priority    string
	scheduled   string
	requestedBy string
}

// normalizeSchedule turns "2025-01-27 10:00" into "2025-01-27T10:00:00".
// Date-only input is passed through unchanged.
func normalizeSchedule(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.Replace(s, " ", "T", 1)
	if strings.Count(s, ":") == 1 {
		s += ":00"
	}
	return s
}

// newRequestFormView builds the create form for a maintenance request.
// A non-zero equipmentID preselects the equipment, as when the form is
// opened from an equipment detail page.
func newRequestFormView(state *SharedState, equipmentID int) View {
	fields := requestFields{
		requestType: string(domain.TypeCorrective),
		priority:    string(domain.PriorityMedium),
	}
	if equipmentID != 0 {
		fields.equipment = strconv.Itoa(equipmentID)
	}

	var (
		equipment []domain.Equipment
		users     []domain.User
	)

	load := func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			list, err := state.API.ListEquipment(ctx)
			equipment = list
			return err
		})
		g.Go(func() error {
			list, err := state.API.ListUsers(ctx)
			users = list
			return err
		})
		return g.Wait()
	}

	build := func() *huh.Form {
		equipmentOpts := make([]huh.Option[string], 0, len(equipment))
		for _, eq := range equipment {
			label := eq.Name
			if eq.IsScrapped {
				label += " (scrapped)"
			}
			equipmentOpts = append(equipmentOpts, huh.NewOption(label, strconv.Itoa(eq.ID)))
		}

		priorityOpts := make([]huh.Option[string], 0, len(domain.Priorities))
		for _, p := range domain.Priorities {
			priorityOpts = append(priorityOpts, huh.NewOption(string(p), string(p)))
		}

		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Subject").
					Value(&fields.subject).
					Validate(validateRequired("subject")),
				huh.NewText().
					Title("Description").
					Value(&fields.description).
					Lines(3),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Equipment").
					Options(equipmentOpts...).
					Value(&fields.equipment).
					Validate(validateRequired("equipment")),
				huh.NewSelect[string]().
					Title("Type").
					Options(
						huh.NewOption("Corrective (breakdown)", string(domain.TypeCorrective)),
						huh.NewOption("Preventive (scheduled)", string(domain.TypePreventive)),
					).
					Value(&fields.requestType),
				huh.NewSelect[string]().
					Title("Priority").
					Options(priorityOpts...).
					Value(&fields.priority),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Scheduled (optional)").
					Placeholder("2025-06-30 09:00").
					Value(&fields.scheduled).
					Validate(validateOptionalDateTime),
				huh.NewSelect[string]().
					Title("Requested By").
					Options(userOptions(users, true)...).
					Value(&fields.requestedBy),
			),
		).WithTheme(gearguardHuhTheme()).WithShowHelp(false)
	}

	submit := func(ctx context.Context) (string, error) {
		payload := api.RequestPayload{
			Subject:     fields.subject,
			Description: fields.description,
			Equipment:   atoiOr(fields.equipment, 0),
			RequestType: fields.requestType,
			Priority:    fields.priority,
		}
		if s := normalizeSchedule(fields.scheduled); s != "" {
			payload.ScheduledDate = &s
		}
		if fields.requestedBy != "" {
			id := atoiOr(fields.requestedBy, 0)
			payload.RequestedBy = &id
		}
		if _, err := state.API.CreateRequest(ctx, payload); err != nil {
			return "", err
		}
		return "Request created", nil
	}

	return newFormView(state, "New Request", load, build, submit)
}

// newAssignTechnicianView builds a single-select form assigning a technician
// to a request. Options narrow to the request's team when it has one.
func newAssignTechnicianView(state *SharedState, req domain.MaintenanceRequest) View {
	var technicians []domain.Technician
	var choice string
	if req.AssignedTechnician != 0 {
		choice = strconv.Itoa(req.AssignedTechnician)
	}

	load := func(ctx context.Context) error {
		list, err := state.API.ListTechnicians(ctx)
		technicians = list
		return err
	}

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Assign %q to", req.Subject)).
					Options(technicianOptions(technicians, req.MaintenanceTeam, false)...).
					Value(&choice).
					Validate(validateRequired("technician")),
			),
		).WithTheme(gearguardHuhTheme()).WithShowHelp(false)
	}

	submit := func(ctx context.Context) (string, error) {
		if err := state.API.AssignTechnician(ctx, req.ID, atoiOr(choice, 0)); err != nil {
			return "", err
		}
		return "Technician assigned", nil
	}

	return newFormView(state, "Assign Technician", load, build, submit)
}
