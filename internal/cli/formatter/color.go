package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gearguard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StageStyle returns the accent style for a kanban stage.
func StageStyle(stage domain.Stage) lipgloss.Style {
	switch stage {
	case domain.StageNew:
		return StyleBlue
	case domain.StageInProgress:
		return StyleYellow
	case domain.StageRepaired:
		return StyleGreen
	case domain.StageScrap:
		return StyleRed
	default:
		return StyleDim
	}
}

// StageBadge renders a colored stage label such as "IN_PROGRESS".
func StageBadge(stage domain.Stage) string {
	return StageStyle(stage).Render(string(stage))
}

// PriorityBadge renders a colored priority label.
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityLow:
		return StyleDim.Render("LOW")
	case domain.PriorityMedium:
		return StyleBlue.Render("MEDIUM")
	case domain.PriorityHigh:
		return StyleYellow.Render("HIGH")
	case domain.PriorityUrgent:
		return StyleRed.Render("URGENT")
	default:
		return StyleDim.Render(string(p))
	}
}

// ScrapBadge renders the equipment status column: Scrapped or Active.
func ScrapBadge(scrapped bool) string {
	if scrapped {
		return StyleRed.Render("Scrapped")
	}
	return StyleGreen.Render("Active")
}

// OverdueBadge renders the OVERDUE marker, or an empty string.
func OverdueBadge(overdue bool) string {
	if overdue {
		return StyleRed.Render("OVERDUE")
	}
	return ""
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
