package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/huh"
	"golang.org/x/sync/errgroup"

	"gearguard/internal/api"
	"gearguard/internal/domain"
)

// equipmentFields holds the form-bound values for the equipment form.
// Everything is a string because the API accepts the form field set
// verbatim, empty strings included.
type equipmentFields struct {
	name             string
	serialNumber     string
	category         string
	department       string
	assignedEmployee string
	team             string
	technician       string
	purchaseDate     string
	warrantyExpiry   string
	location         string
	notes            string
}

func fieldsFromEquipment(eq *domain.Equipment) equipmentFields {
	f := equipmentFields{category: string(domain.Categories[0])}
	if eq == nil {
		return f
	}
	f.name = eq.Name
	f.serialNumber = eq.SerialNumber
	f.category = string(eq.Category)
	f.department = eq.Department
	f.assignedEmployee = eq.AssignedEmployee
	if eq.MaintenanceTeam != 0 {
		f.team = strconv.Itoa(eq.MaintenanceTeam)
	}
	if eq.DefaultTechnician != 0 {
		f.technician = strconv.Itoa(eq.DefaultTechnician)
	}
	f.purchaseDate = eq.PurchaseDate
	f.warrantyExpiry = eq.WarrantyExpiry
	f.location = eq.Location
	f.notes = eq.Notes
	return f
}

func (f *equipmentFields) payload() api.EquipmentPayload {
	return api.EquipmentPayload{
		Name:              f.name,
		SerialNumber:      f.serialNumber,
		Category:          f.category,
		Department:        f.department,
		AssignedEmployee:  f.assignedEmployee,
		MaintenanceTeam:   f.team,
		DefaultTechnician: f.technician,
		PurchaseDate:      f.purchaseDate,
		WarrantyExpiry:    f.warrantyExpiry,
		Location:          f.location,
		Notes:             f.notes,
	}
}

// newEquipmentFormView builds the create (existing == nil) or edit form for
// a piece of equipment. Team and technician options are fetched up front;
// the technician select narrows to the chosen team's members.
func newEquipmentFormView(state *SharedState, existing *domain.Equipment) View {
	fields := fieldsFromEquipment(existing)

	var (
		teams       []domain.Team
		technicians []domain.Technician
	)

	load := func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			list, err := state.API.ListTeams(ctx)
			teams = list
			return err
		})
		g.Go(func() error {
			list, err := state.API.ListTechnicians(ctx)
			technicians = list
			return err
		})
		return g.Wait()
	}

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&fields.name).
					Validate(validateRequired("name")),
				huh.NewInput().
					Title("Serial Number").
					Value(&fields.serialNumber).
					Validate(validateRequired("serial number")),
				huh.NewSelect[string]().
					Title("Category").
					Options(categoryOptions()...).
					Value(&fields.category),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Department").
					Value(&fields.department),
				huh.NewInput().
					Title("Assigned Employee").
					Value(&fields.assignedEmployee),
				huh.NewInput().
					Title("Location").
					Value(&fields.location),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Maintenance Team").
					Options(teamOptions(teams, true)...).
					Value(&fields.team),
				huh.NewSelect[string]().
					Title("Default Technician").
					OptionsFunc(func() []huh.Option[string] {
						return technicianOptions(technicians, atoiOr(fields.team, 0), true)
					}, &fields.team).
					Value(&fields.technician),
			),
			huh.NewGroup(
				dateInput("Purchase Date", &fields.purchaseDate),
				dateInput("Warranty Expiry", &fields.warrantyExpiry),
				huh.NewText().
					Title("Notes").
					Value(&fields.notes).
					Lines(3),
			),
		).WithTheme(gearguardHuhTheme()).WithShowHelp(false)
	}

	title := "New Equipment"
	submit := func(ctx context.Context) (string, error) {
		if existing != nil {
			if _, err := state.API.UpdateEquipment(ctx, existing.ID, fields.payload()); err != nil {
				return "", err
			}
			return "Equipment updated", nil
		}
		if _, err := state.API.CreateEquipment(ctx, fields.payload()); err != nil {
			return "", err
		}
		return "Equipment created", nil
	}
	if existing != nil {
		title = "Edit Equipment"
	}

	return newFormView(state, title, load, build, submit)
}
