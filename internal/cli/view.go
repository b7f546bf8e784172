package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewEquipmentList
	ViewEquipmentDetail
	ViewRequests
	ViewCalendar
	ViewTeams
	ViewForm
)

// View is the interface that all TUI views implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer marks views that own a focused text input and must receive
// every key event, bypassing the global shortcuts.
type inputCapturer interface {
	capturesInput() bool
}

func viewCapturesInput(v View) bool {
	if c, ok := v.(inputCapturer); ok {
		return c.capturesInput()
	}
	return false
}
