package domain

import "strings"

// Equipment is a unit of maintainable inventory as served by the API.
// All fields are server-authoritative; the client never persists them.
type Equipment struct {
	ID                    int      `json:"id"`
	Name                  string   `json:"name"`
	SerialNumber          string   `json:"serial_number"`
	Category              Category `json:"category"`
	Department            string   `json:"department"`
	AssignedEmployee      string   `json:"assigned_employee"`
	MaintenanceTeam       int      `json:"maintenance_team"`
	MaintenanceTeamName   string   `json:"maintenance_team_name"`
	DefaultTechnician     int      `json:"default_technician"`
	DefaultTechnicianName string   `json:"default_technician_name"`
	PurchaseDate          string   `json:"purchase_date"`
	WarrantyExpiry        string   `json:"warranty_expiry"`
	Location              string   `json:"location"`
	Notes                 string   `json:"notes"`
	IsScrapped            bool     `json:"is_scrapped"`
	RequestCount          int      `json:"request_count"`
	OpenRequestCount      int      `json:"open_request_count"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
}

// FilterEquipment returns the equipment whose name or serial number contains
// term (case-insensitive) and whose category matches the filter. An empty
// term matches everything; an empty category disables the category filter.
func FilterEquipment(list []Equipment, term string, category Category) []Equipment {
	term = strings.ToLower(term)
	var out []Equipment
	for _, eq := range list {
		if term != "" &&
			!strings.Contains(strings.ToLower(eq.Name), term) &&
			!strings.Contains(strings.ToLower(eq.SerialNumber), term) {
			continue
		}
		if category != "" && eq.Category != category {
			continue
		}
		out = append(out, eq)
	}
	return out
}

// CountByCategory tallies equipment per category.
func CountByCategory(list []Equipment) map[Category]int {
	counts := make(map[Category]int)
	for _, eq := range list {
		counts[eq.Category]++
	}
	return counts
}

// ScrappedRate returns the percentage (0-100, rounded) of scrapped equipment.
// Recomputed client-side from the fetched list rather than read from the
// statistics endpoint, so it can lag the server between fetches.
func ScrappedRate(list []Equipment) int {
	if len(list) == 0 {
		return 0
	}
	scrapped := 0
	for _, eq := range list {
		if eq.IsScrapped {
			scrapped++
		}
	}
	return int(float64(scrapped)/float64(len(list))*100 + 0.5)
}
