package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/domain"
)

func TestTUI_DashboardLoadsOnStartup(t *testing.T) {
	backend := newStubBackend(t)
	d := NewTestDriver(t, backend)

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())

	view := d.View()
	assert.NotContains(t, view, "Loading")
	assert.Contains(t, view, "Total Requests")
	assert.Contains(t, view, "Spindle jam")
	// 1 of 3 pieces of equipment is scrapped.
	assert.Contains(t, view, "33%")
}

func TestTUI_QuitWithQ(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))
	d.PressKey('q')
	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))
	d.PressCtrlC()
	assert.True(t, d.IsQuitting())
}

func TestTUI_DigitKeysSwitchPages(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('2')
	assert.Equal(t, ViewEquipmentList, d.ActiveViewID())
	assert.Contains(t, d.View(), "CNC Machine 01")

	d.PressKey('3')
	assert.Equal(t, ViewRequests, d.ActiveViewID())
	assert.Contains(t, d.View(), "Oil change")

	d.PressKey('4')
	assert.Equal(t, ViewCalendar, d.ActiveViewID())

	d.PressKey('5')
	assert.Equal(t, ViewTeams, d.ActiveViewID())
	assert.Contains(t, d.View(), "Mechanics")

	d.PressKey('1')
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	// Each switch replaces the stack rather than stacking pages.
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_EquipmentSearchNarrowsList(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('2')
	d.PressKey('/')
	d.Type("cnc")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "CNC Machine 01")
	assert.NotContains(t, view, "Forklift A")
	assert.Contains(t, view, "1 of 3 shown")
}

func TestTUI_EquipmentSearchEscClears(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('2')
	d.PressKey('/')
	d.Type("cnc")
	d.PressEsc()

	assert.Contains(t, d.View(), "Forklift A")
	assert.Equal(t, 1, d.ViewStackLen(), "esc out of search must not pop the page")
}

func TestTUI_CategoryFilterCycles(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('2')
	d.PressKey('c') // MACHINE
	view := d.View()
	assert.Contains(t, view, "CNC Machine 01")
	assert.NotContains(t, view, "Forklift A")

	d.PressKey('c') // VEHICLE
	view = d.View()
	assert.Contains(t, view, "Forklift A")
	assert.NotContains(t, view, "CNC Machine 01")
}

func TestTUI_EquipmentDetailPushAndPop(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('2')
	d.PressEnter()

	assert.Equal(t, ViewEquipmentDetail, d.ActiveViewID())
	assert.Equal(t, 2, d.ViewStackLen())
	view := d.View()
	assert.Contains(t, view, "CNC-001")
	assert.Contains(t, view, "Maintenance History")

	d.PressEsc()
	assert.Equal(t, ViewEquipmentList, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_KanbanMoveIssuesSingleStageUpdate(t *testing.T) {
	backend := newStubBackend(t)
	d := NewTestDriver(t, backend)

	d.PressKey('3')
	// Cursor starts on the NEW column whose only card is request 10.
	d.PressEnter()               // pick up
	d.PressRight()               // target IN_PROGRESS
	d.PressEnter()               // drop

	assert.Equal(t, int32(1), backend.StageUpdates.Load())
	assert.Equal(t, "IN_PROGRESS", backend.LastStageBody.Load())

	notice, isErr := d.Notice()
	assert.False(t, isErr)
	assert.Contains(t, notice, "Spindle jam")
}

func TestTUI_KanbanDropOnOwnColumnIssuesNothing(t *testing.T) {
	backend := newStubBackend(t)
	d := NewTestDriver(t, backend)

	d.PressKey('3')
	d.PressEnter() // pick up
	d.PressEnter() // drop on the same column

	assert.Equal(t, int32(0), backend.StageUpdates.Load())
}

func TestTUI_KanbanFailedMoveShowsErrorNotice(t *testing.T) {
	backend := newStubBackend(t)
	backend.FailMutations.Store(true)
	d := NewTestDriver(t, backend)

	d.PressKey('3')
	d.PressEnter()
	d.PressRight()
	d.PressEnter()

	assert.Equal(t, int32(1), backend.StageUpdates.Load())
	notice, isErr := d.Notice()
	assert.True(t, isErr)
	assert.Contains(t, notice, "Could not move request")
	// The card stays where the last fetch put it.
	assert.Contains(t, d.View(), "Spindle jam")
}

func TestTUI_KanbanCancelPickupWithEsc(t *testing.T) {
	backend := newStubBackend(t)
	d := NewTestDriver(t, backend)

	d.PressKey('3')
	d.PressEnter()
	assert.Contains(t, d.View(), "Holding")

	d.PressEsc()
	assert.NotContains(t, d.View(), "Holding")
	assert.Equal(t, 1, d.ViewStackLen(), "esc while holding must cancel, not pop")
	assert.Equal(t, int32(0), backend.StageUpdates.Load())
}

func TestTUI_CalendarShowsScheduledRequestToday(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('4')
	view := d.View()
	// Request 10 is scheduled today at 10:00 and today starts selected.
	assert.Contains(t, view, "Spindle jam")
	assert.Contains(t, view, "10:00")
}

func TestTUI_CalendarMonthNavigation(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('4')
	before := d.View()
	d.PressKey('n')
	after := d.View()
	assert.NotEqual(t, before, after)
	// Next month has nothing scheduled.
	assert.Contains(t, after, "Nothing scheduled")

	d.PressKey('p')
	assert.Contains(t, d.View(), "Spindle jam")
}

func TestTUI_TeamsPageShowsStatsAndMembers(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('5')
	view := d.View()
	assert.Contains(t, view, "2") // teams
	assert.Contains(t, view, "available users")
	assert.Contains(t, view, "Ada Boyd")
	assert.Contains(t, view, "Hydraulics")
}

func TestTUI_TeamsCursorChangesMemberPane(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('5')
	d.PressDown() // IT Support has no technicians
	assert.Contains(t, d.View(), "No technicians on this team")
}

func TestTUI_FormPushesAndEscCancels(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('2')
	d.PressKey('a')
	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, 2, d.ViewStackLen())

	d.PressEsc()
	assert.Equal(t, ViewEquipmentList, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_DigitKeysReachFocusedSearchInput(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('2')
	d.PressKey('/')
	d.Type("cnc-001")

	// The digit must land in the search box, not switch pages.
	assert.Equal(t, ViewEquipmentList, d.ActiveViewID())
	assert.Contains(t, d.View(), "1 of 3 shown")
}

func TestTUI_RefreshAfterWindowResize(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotEmpty(t, d.View())
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestTUI_StageLabelsOnBoard(t *testing.T) {
	d := NewTestDriver(t, newStubBackend(t))

	d.PressKey('3')
	view := d.View()
	for _, s := range domain.Stages {
		assert.Contains(t, view, s.Label())
	}
}
