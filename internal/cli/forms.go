package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"gearguard/internal/cli/formatter"
	"gearguard/internal/domain"
)

// gearguardHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func gearguardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalDateTime accepts empty, a date, or a date with time.
func validateOptionalDateTime(s string) error {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return fmt.Errorf("use YYYY-MM-DD or YYYY-MM-DD HH:MM")
}

// dateInput returns a huh.Input for an optional date field.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

// atoiOr parses s, returning fallback for empty or malformed input. Used
// after select fields whose option values are known-good integers.
func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// categoryOptions returns the select options for the equipment category.
func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.Categories))
	for _, c := range domain.Categories {
		opts = append(opts, huh.NewOption(string(c), string(c)))
	}
	return opts
}

// teamOptions returns team select options, with an optional blank entry.
func teamOptions(teams []domain.Team, includeNone bool) []huh.Option[string] {
	var opts []huh.Option[string]
	if includeNone {
		opts = append(opts, huh.NewOption("(none)", ""))
	}
	for _, t := range teams {
		opts = append(opts, huh.NewOption(t.Name, strconv.Itoa(t.ID)))
	}
	return opts
}

// technicianOptions returns technician select options filtered to a team.
// A zero teamID lists every technician.
func technicianOptions(technicians []domain.Technician, teamID int, includeNone bool) []huh.Option[string] {
	var opts []huh.Option[string]
	if includeNone {
		opts = append(opts, huh.NewOption("(none)", ""))
	}
	for _, t := range domain.TechniciansForTeam(technicians, teamID) {
		label := t.User.FullName
		if label == "" {
			label = t.User.Username
		}
		if t.Specialization != "" {
			label += " (" + t.Specialization + ")"
		}
		opts = append(opts, huh.NewOption(label, strconv.Itoa(t.ID)))
	}
	return opts
}

// userOptions returns user select options, with an optional blank entry.
func userOptions(users []domain.User, includeNone bool) []huh.Option[string] {
	var opts []huh.Option[string]
	if includeNone {
		opts = append(opts, huh.NewOption("(none)", ""))
	}
	for _, u := range users {
		label := u.FullName
		if label == "" {
			label = u.Username
		}
		opts = append(opts, huh.NewOption(label, strconv.Itoa(u.ID)))
	}
	return opts
}
