package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechniciansForTeam(t *testing.T) {
	technicians := []Technician{
		{ID: 1, Team: 10, User: User{ID: 100}},
		{ID: 2, Team: 20, User: User{ID: 101}},
		{ID: 3, Team: 10, User: User{ID: 102}},
	}

	got := TechniciansForTeam(technicians, 10)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)

	// Zero disables the filter.
	assert.Len(t, TechniciansForTeam(technicians, 0), 3)

	assert.Empty(t, TechniciansForTeam(technicians, 99))
}

func TestComputeTeamStats(t *testing.T) {
	teams := []Team{{ID: 1}, {ID: 2}}
	technicians := []Technician{
		{ID: 1, Team: 1, User: User{ID: 100}},
		{ID: 2, Team: 1, User: User{ID: 101}},
		{ID: 3, Team: 2, User: User{ID: 102}},
	}
	users := []User{{ID: 100}, {ID: 101}, {ID: 102}, {ID: 103}, {ID: 104}}

	stats := ComputeTeamStats(teams, technicians, users)
	assert.Equal(t, 2, stats.TotalTeams)
	assert.Equal(t, 3, stats.TotalTechnicians)
	// Two users are not yet technicians.
	assert.Equal(t, 2, stats.AvailableUsers)
	// 3 technicians over 2 teams rounds up to 2.
	assert.Equal(t, 2, stats.AvgTeamSize)
}

func TestComputeTeamStats_NoTeams(t *testing.T) {
	stats := ComputeTeamStats(nil, nil, []User{{ID: 1}})
	assert.Equal(t, 0, stats.AvgTeamSize)
	assert.Equal(t, 1, stats.AvailableUsers)
}
