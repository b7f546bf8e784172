package domain

// MaintenanceRequest is a maintenance ticket for a piece of equipment.
// Stage is the kanban column; transitions are not constrained client-side.
type MaintenanceRequest struct {
	ID                     int         `json:"id"`
	Subject                string      `json:"subject"`
	Description            string      `json:"description"`
	Equipment              int         `json:"equipment"`
	EquipmentName          string      `json:"equipment_name"`
	EquipmentCategory      Category    `json:"equipment_category"`
	RequestType            RequestType `json:"request_type"`
	Stage                  Stage       `json:"stage"`
	Priority               Priority    `json:"priority"`
	MaintenanceTeam        int         `json:"maintenance_team"`
	MaintenanceTeamName    string      `json:"maintenance_team_name"`
	AssignedTechnician     int         `json:"assigned_technician"`
	AssignedTechnicianName string      `json:"assigned_technician_name"`
	ScheduledDate          string      `json:"scheduled_date"`
	CompletedDate          string      `json:"completed_date"`
	DurationHours          float64     `json:"duration_hours"`
	RequestedBy            int         `json:"requested_by"`
	RequestedByName        string      `json:"requested_by_name"`
	IsOverdue              bool        `json:"is_overdue"`
	CreatedAt              string      `json:"created_at"`
	UpdatedAt              string      `json:"updated_at"`
}

// IsOpen reports whether the request still needs work
// (anything not repaired or scrapped).
func (r MaintenanceRequest) IsOpen() bool {
	return r.Stage != StageRepaired && r.Stage != StageScrap
}

// OpenRequests filters a request list down to open ones.
func OpenRequests(list []MaintenanceRequest) []MaintenanceRequest {
	var out []MaintenanceRequest
	for _, r := range list {
		if r.IsOpen() {
			out = append(out, r)
		}
	}
	return out
}

// Statistics is the aggregate payload of GET /requests/statistics/.
type Statistics struct {
	TotalRequests int                 `json:"total_requests"`
	ByStage       map[Stage]int       `json:"by_stage"`
	ByType        map[RequestType]int `json:"by_type"`
	ByPriority    map[Priority]int    `json:"by_priority"`
	Overdue       int                 `json:"overdue"`
}
