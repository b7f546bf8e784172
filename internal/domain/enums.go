package domain

type Category string

const (
	CategoryMachine  Category = "MACHINE"
	CategoryVehicle  Category = "VEHICLE"
	CategoryComputer Category = "COMPUTER"
	CategoryTool     Category = "TOOL"
	CategoryOther    Category = "OTHER"
)

// Categories lists every equipment category in display order.
var Categories = []Category{
	CategoryMachine, CategoryVehicle, CategoryComputer, CategoryTool, CategoryOther,
}

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[string]bool{
	"MACHINE": true, "VEHICLE": true, "COMPUTER": true, "TOOL": true, "OTHER": true,
}

type Stage string

const (
	StageNew        Stage = "NEW"
	StageInProgress Stage = "IN_PROGRESS"
	StageRepaired   Stage = "REPAIRED"
	StageScrap      Stage = "SCRAP"
)

// Stages lists the kanban columns in board order.
var Stages = []Stage{StageNew, StageInProgress, StageRepaired, StageScrap}

// Label returns the human-readable column heading for a stage.
func (s Stage) Label() string {
	switch s {
	case StageNew:
		return "New"
	case StageInProgress:
		return "In Progress"
	case StageRepaired:
		return "Repaired"
	case StageScrap:
		return "Scrap"
	}
	return string(s)
}

type RequestType string

const (
	TypeCorrective RequestType = "CORRECTIVE"
	TypePreventive RequestType = "PREVENTIVE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists request priorities from least to most severe.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
