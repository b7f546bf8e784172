package cli

import (
	"context"

	"github.com/charmbracelet/huh"
)

// newDeleteConfirmView builds a yes/no confirmation form that runs del only
// on an affirmative answer. Declining just closes the modal.
func newDeleteConfirmView(state *SharedState, prompt, notice string, del func(context.Context) error) View {
	confirmed := false

	build := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(prompt).
					Description("This cannot be undone.").
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed),
			),
		).WithTheme(gearguardHuhTheme()).WithShowHelp(false)
	}

	submit := func(ctx context.Context) (string, error) {
		if !confirmed {
			return "", nil
		}
		if err := del(ctx); err != nil {
			return "", err
		}
		return notice, nil
	}

	return newFormView(state, "Confirm Delete", nil, build, submit)
}
