package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gearguard/internal/domain"
)

func TestMain(m *testing.M) {
	// http.Transport keeps idle connections alive briefly after tests.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// capture records the last request the stub server saw.
type capture struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *capture) {
	t.Helper()
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()
		rec.body, _ = io.ReadAll(r.Body)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/api"
	return NewClient(cfg, nil), rec
}

func respondJSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
}

func TestListEquipment(t *testing.T) {
	client, rec := newTestClient(t, respondJSON([]domain.Equipment{
		{ID: 1, Name: "CNC Machine 01", Category: domain.CategoryMachine},
	}))

	list, err := client.ListEquipment(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CNC Machine 01", list[0].Name)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/equipment/", rec.path)
}

func TestEveryCallCarriesRequestID(t *testing.T) {
	client, rec := newTestClient(t, respondJSON([]domain.Team{}))

	_, err := client.ListTeams(context.Background())
	require.NoError(t, err)

	first := rec.header.Get("X-Request-ID")
	assert.NotEmpty(t, first)
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))

	_, err = client.ListTeams(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, rec.header.Get("X-Request-ID"), "request ids must be fresh per call")
}

func TestUpdateRequestStage_BodyAndRoute(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateRequestStage(context.Background(), 42, domain.StageRepaired)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/requests/42/update_stage/", rec.path)
	assert.JSONEq(t, `{"stage":"REPAIRED"}`, string(rec.body))
}

func TestAssignTechnician_BodyAndRoute(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	err := client.AssignTechnician(context.Background(), 7, 3)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/requests/7/assign_technician/", rec.path)
	assert.JSONEq(t, `{"technician_id":3}`, string(rec.body))
}

func TestCreateEquipment_UnsetFieldsTravelAsEmptyStrings(t *testing.T) {
	client, rec := newTestClient(t, respondJSON(domain.Equipment{ID: 5}))

	_, err := client.CreateEquipment(context.Background(), EquipmentPayload{
		Name:         "Drill Press",
		SerialNumber: "DP-9",
		Category:     "TOOL",
	})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	// Optional fields must be present as empty strings, never omitted.
	assert.Equal(t, "", sent["maintenance_team"])
	assert.Equal(t, "", sent["default_technician"])
	assert.Equal(t, "", sent["purchase_date"])
	assert.Len(t, sent, 11)
}

func TestCreateRequest_OptionalFieldsNullWhenUnset(t *testing.T) {
	client, rec := newTestClient(t, respondJSON(domain.MaintenanceRequest{ID: 1}))

	_, err := client.CreateRequest(context.Background(), RequestPayload{
		Subject:     "Spindle jam",
		Equipment:   3,
		RequestType: "CORRECTIVE",
		Priority:    "HIGH",
	})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Nil(t, sent["scheduled_date"])
	assert.Nil(t, sent["requested_by"])
}

func TestNotFoundMapsToStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	})

	_, err := client.GetEquipment(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Contains(t, se.Body, "Not found")
}

func TestValidationErrorKeepsBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"serial_number":["This field must be unique."]}`, http.StatusBadRequest)
	})

	_, err := client.CreateEquipment(context.Background(), EquipmentPayload{Name: "Dup"})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Contains(t, se.Body, "must be unique")
}

func TestUnreachableServerMapsToErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/api"
	client := NewClient(cfg, nil)

	_, err := client.ListRequests(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSlowServerMapsToErrTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	// Shrink the timeout so the test stays fast.
	client.cfg.TimeoutMs = 50

	_, err := client.ListRequests(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRequestStatistics_DecodesAggregates(t *testing.T) {
	client, _ := newTestClient(t, respondJSON(map[string]any{
		"total_requests": 12,
		"by_stage":       map[string]int{"NEW": 5, "IN_PROGRESS": 3, "REPAIRED": 3, "SCRAP": 1},
		"by_type":        map[string]int{"CORRECTIVE": 8, "PREVENTIVE": 4},
		"by_priority":    map[string]int{"HIGH": 2},
		"overdue":        2,
	}))

	stats, err := client.RequestStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalRequests)
	assert.Equal(t, 5, stats.ByStage[domain.StageNew])
	assert.Equal(t, 4, stats.ByType[domain.TypePreventive])
	assert.Equal(t, 2, stats.Overdue)
}

func TestDeleteTeam_Route(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteTeam(context.Background(), 4))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/teams/4/", rec.path)
}

func TestRequestsByStage_QueryParam(t *testing.T) {
	var gotStage string
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStage = r.URL.Query().Get("stage")
		respondJSON([]domain.MaintenanceRequest{})(w, r)
	})

	_, err := client.RequestsByStage(context.Background(), domain.StageInProgress)
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", gotStage)
	assert.Equal(t, "/api/requests/by_stage/", rec.path)
}

func TestTeamTechnicians_Route(t *testing.T) {
	client, rec := newTestClient(t, respondJSON([]domain.Technician{
		{ID: 1, Team: 2, User: domain.User{ID: 100, FullName: "Ada Boyd"}},
	}))

	list, err := client.TeamTechnicians(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ada Boyd", list[0].User.FullName)
	assert.Equal(t, "/api/teams/2/technicians/", rec.path)
}

func TestUpdateTechnician_BodyAndRoute(t *testing.T) {
	client, rec := newTestClient(t, respondJSON(domain.Technician{ID: 9}))

	_, err := client.UpdateTechnician(context.Background(), 9, TechnicianPayload{
		UserID: 100, Team: 2, Specialization: "Hydraulics",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/technicians/9/", rec.path)
	assert.JSONEq(t, `{"user_id":100,"team":2,"phone":"","specialization":"Hydraulics"}`, string(rec.body))
}

func TestDeleteTechnician_Route(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteTechnician(context.Background(), 3))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/technicians/3/", rec.path)
}

func TestUpdateRequest_Route(t *testing.T) {
	client, rec := newTestClient(t, respondJSON(domain.MaintenanceRequest{ID: 6}))

	_, err := client.UpdateRequest(context.Background(), 6, RequestPayload{
		Subject: "Spindle jam", Equipment: 1, RequestType: "CORRECTIVE", Priority: "HIGH",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/requests/6/", rec.path)
}

func TestGetRequest_Route(t *testing.T) {
	client, rec := newTestClient(t, respondJSON(domain.MaintenanceRequest{
		ID: 6, Subject: "Spindle jam",
	}))

	req, err := client.GetRequest(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "Spindle jam", req.Subject)
	assert.Equal(t, "/api/requests/6/", rec.path)
}

func TestEquipmentByDepartment_QueryParam(t *testing.T) {
	var gotDept string
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotDept = r.URL.Query().Get("department")
		respondJSON([]domain.Equipment{})(w, r)
	})

	_, err := client.EquipmentByDepartment(context.Background(), "Production")
	require.NoError(t, err)
	assert.Equal(t, "Production", gotDept)
	assert.Equal(t, "/api/equipment/by_department/", rec.path)
}

func TestRequestsByTeam_QueryParam(t *testing.T) {
	var gotTeam string
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTeam = r.URL.Query().Get("team_id")
		respondJSON([]domain.MaintenanceRequest{})(w, r)
	})

	_, err := client.RequestsByTeam(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "5", gotTeam)
	assert.Equal(t, "/api/requests/by_team/", rec.path)
}

func TestCalendarRequests_Route(t *testing.T) {
	client, rec := newTestClient(t, respondJSON([]domain.MaintenanceRequest{
		{ID: 1, ScheduledDate: "2025-01-27T10:00:00"},
	}))

	list, err := client.CalendarRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/api/requests/calendar/", rec.path)
}
