package cli

import (
	"context"

	"github.com/charmbracelet/huh"
	"golang.org/x/sync/errgroup"

	"gearguard/internal/api"
	"gearguard/internal/domain"
)

// newTeamFormView builds the create (existing == nil) or edit form for a
// maintenance team.
func newTeamFormView(state *SharedState, existing *domain.Team) View {
	var fields api.TeamPayload
	if existing != nil {
		fields.Name = existing.Name
		fields.Description = existing.Description
	}

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Team Name").
					Value(&fields.Name).
					Validate(validateRequired("team name")),
				huh.NewText().
					Title("Description").
					Value(&fields.Description).
					Lines(2),
			),
		).WithTheme(gearguardHuhTheme()).WithShowHelp(false)
	}

	title := "New Team"
	submit := func(ctx context.Context) (string, error) {
		if existing != nil {
			if _, err := state.API.UpdateTeam(ctx, existing.ID, fields); err != nil {
				return "", err
			}
			return "Team updated", nil
		}
		if _, err := state.API.CreateTeam(ctx, fields); err != nil {
			return "", err
		}
		return "Team created", nil
	}
	if existing != nil {
		title = "Edit Team"
	}

	return newFormView(state, title, nil, build, submit)
}

// newTechnicianFormView builds the form registering a user as a technician
// on a team. Only users not already registered are offered.
func newTechnicianFormView(state *SharedState) View {
	var (
		teams       []domain.Team
		technicians []domain.Technician
		users       []domain.User
	)
	var userID, teamID, phone, specialization string

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
		g.Go(func() error {
			list, err := state.API.ListUsers(ctx)
			users = list
			return err
		})
		return g.Wait()
	}

	build := func() *huh.Form {
		taken := make(map[int]bool, len(technicians))
		for _, t := range technicians {
			taken[t.User.ID] = true
		}
		var available []domain.User
		for _, u := range users {
			if !taken[u.ID] {
				available = append(available, u)
			}
		}

		return huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("User").
					Options(userOptions(available, false)...).
					Value(&userID).
					Validate(validateRequired("user")),
				huh.NewSelect[string]().
					Title("Team").
					Options(teamOptions(teams, false)...).
					Value(&teamID).
					Validate(validateRequired("team")),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Phone (optional)").
					Value(&phone),
				huh.NewInput().
					Title("Specialization (optional)").
					Value(&specialization),
			),
		).WithTheme(gearguardHuhTheme()).WithShowHelp(false)
	}

	submit := func(ctx context.Context) (string, error) {
		payload := api.TechnicianPayload{
			UserID:         atoiOr(userID, 0),
			Team:           atoiOr(teamID, 0),
			Phone:          phone,
			Specialization: specialization,
		}
		if _, err := state.API.CreateTechnician(ctx, payload); err != nil {
			return "", err
		}
		return "Technician added", nil
	}

	return newFormView(state, "Add Technician", load, build, submit)
}
