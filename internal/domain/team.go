package domain

// User is a read-only account record used for technician assignment
// and the "requested by" field on requests.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

// Team is a maintenance team.
type Team struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	TechnicianCount int    `json:"technician_count"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Technician is a user attached to exactly one maintenance team.
type Technician struct {
	ID             int    `json:"id"`
	User           User   `json:"user"`
	Team           int    `json:"team"`
	TeamName       string `json:"team_name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	CreatedAt      string `json:"created_at"`
}

// TechniciansForTeam filters technicians by team membership.
// A zero teamID disables the filter, matching the form behavior of showing
// every technician until a team is selected.
func TechniciansForTeam(list []Technician, teamID int) []Technician {
	if teamID == 0 {
		return list
	}
	var out []Technician
	for _, t := range list {
		if t.Team == teamID {
			out = append(out, t)
		}
	}
	return out
}

// TeamStats is the derived header block of the teams page.
type TeamStats struct {
	TotalTeams       int
	TotalTechnicians int
	AvailableUsers   int
	AvgTeamSize      int
}

// ComputeTeamStats derives the teams-page aggregates from fetched lists.
// Available users are those not yet registered as technicians; average team
// size is rounded to the nearest whole technician.
func ComputeTeamStats(teams []Team, technicians []Technician, users []User) TeamStats {
	taken := make(map[int]bool, len(technicians))
	for _, t := range technicians {
		taken[t.User.ID] = true
	}
	available := 0
	for _, u := range users {
		if !taken[u.ID] {
			available++
		}
	}
	avg := 0
	if len(teams) > 0 {
		avg = int(float64(len(technicians))/float64(len(teams)) + 0.5)
	}
	return TeamStats{
		TotalTeams:       len(teams),
		TotalTechnicians: len(technicians),
		AvailableUsers:   available,
		AvgTeamSize:      avg,
	}
}
