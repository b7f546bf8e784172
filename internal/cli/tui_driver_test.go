package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gearguard/internal/api"
	"gearguard/internal/domain"
	"gearguard/internal/teatest"
)

// stubBackend is an httptest server standing in for the GearGuard API.
// It serves a small fixed dataset and counts mutation calls so tests can
// assert exactly how many stage updates a board interaction issued.
type stubBackend struct {
	srv *httptest.Server

	equipment []domain.Equipment
	requests  []domain.MaintenanceRequest
	teams     []domain.Team
	techs     []domain.Technician
	users     []domain.User

	StageUpdates  atomic.Int32
	LastStageBody atomic.Value // string
	FailMutations atomic.Bool
}

func todayAt(hour int) string {
	return fmt.Sprintf("%sT%02d:00:00", time.Now().Format("2006-01-02"), hour)
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()

	b := &stubBackend{
		equipment: []domain.Equipment{
			{ID: 1, Name: "CNC Machine 01", SerialNumber: "CNC-001", Category: domain.CategoryMachine,
				Department: "Production", MaintenanceTeamName: "Mechanics", RequestCount: 2, OpenRequestCount: 1},
			{ID: 2, Name: "Forklift A", SerialNumber: "FLT-100", Category: domain.CategoryVehicle,
				Department: "Warehouse"},
			{ID: 3, Name: "Old Lathe", SerialNumber: "LTH-003", Category: domain.CategoryMachine,
				IsScrapped: true},
		},
		requests: []domain.MaintenanceRequest{
			{ID: 10, Subject: "Spindle jam", Equipment: 1, EquipmentName: "CNC Machine 01",
				Stage: domain.StageNew, Priority: domain.PriorityHigh,
				RequestType: domain.TypeCorrective, ScheduledDate: todayAt(10)},
			{ID: 11, Subject: "Oil change", Equipment: 2, EquipmentName: "Forklift A",
				Stage: domain.StageInProgress, Priority: domain.PriorityMedium,
				RequestType: domain.TypePreventive},
			{ID: 12, Subject: "Belt replaced", Equipment: 1, EquipmentName: "CNC Machine 01",
				Stage: domain.StageRepaired, Priority: domain.PriorityLow,
				RequestType: domain.TypeCorrective},
		},
		teams: []domain.Team{
			{ID: 1, Name: "Mechanics", Description: "Machines and vehicles", TechnicianCount: 2},
			{ID: 2, Name: "IT Support", TechnicianCount: 0},
		},
		techs: []domain.Technician{
			{ID: 1, Team: 1, User: domain.User{ID: 100, FullName: "Ada Boyd"}, Specialization: "Hydraulics"},
			{ID: 2, Team: 1, User: domain.User{ID: 101, FullName: "Max Chen"}},
		},
		users: []domain.User{
			{ID: 100, FullName: "Ada Boyd"}, {ID: 101, FullName: "Max Chen"},
			{ID: 102, FullName: "Ivy Diaz"},
		},
	}

	mux := http.NewServeMux()
	serve := func(pattern string, data func() any) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(data())
		})
	}

	serve("/api/equipment/", func() any { return b.equipment })
	serve("/api/equipment/1/", func() any { return b.equipment[0] })
	serve("/api/equipment/1/maintenance_requests/", func() any {
		var out []domain.MaintenanceRequest
		for _, r := range b.requests {
			if r.Equipment == 1 {
				out = append(out, r)
			}
		}
		return out
	})
	serve("/api/requests/", func() any { return b.requests })
	serve("/api/requests/calendar/", func() any { return b.requests })
	serve("/api/requests/statistics/", func() any {
		stats := domain.Statistics{
			TotalRequests: len(b.requests),
			ByStage:       map[domain.Stage]int{},
			ByType:        map[domain.RequestType]int{},
			ByPriority:    map[domain.Priority]int{},
		}
		for _, r := range b.requests {
			stats.ByStage[r.Stage]++
			stats.ByType[r.RequestType]++
			stats.ByPriority[r.Priority]++
		}
		return stats
	})
	serve("/api/teams/", func() any { return b.teams })
	serve("/api/technicians/", func() any { return b.techs })
	serve("/api/users/", func() any { return b.users })

	mux.HandleFunc("/api/requests/10/update_stage/", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Stage domain.Stage `json:"stage"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		b.LastStageBody.Store(string(payload.Stage))
		b.StageUpdates.Add(1)
		if b.FailMutations.Load() {
			http.Error(w, `{"detail":"server error"}`, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *stubBackend) client() *api.Client {
	cfg := api.DefaultConfig()
	cfg.BaseURL = b.srv.URL + "/api"
	return api.NewClient(cfg, nil)
}

// TestDriver wraps teatest.Driver with app-level inspection helpers.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel against the stub backend, sets the
// terminal size, and drains Init() so the dashboard fetch completes before
// the first assertion.
func NewTestDriver(t *testing.T, backend *stubBackend) *TestDriver {
	t.Helper()

	state := NewSharedState(backend.client(), nil)
	m := newAppModel(state)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Notice returns the transient status-line message, if any.
func (d *TestDriver) Notice() (string, bool) {
	m := d.appModel()
	return m.notice, m.noticeErr
}

// IsQuitting reports whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
