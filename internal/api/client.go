// Package api wraps the GearGuard REST backend. One method per operation;
// every call is a single attempt with a per-request timeout, no retries and
// no caching. Failures come back as ErrUnavailable, ErrTimeout, or a
// *StatusError for non-2xx responses; idempotency is the caller's concern.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gearguard/internal/domain"
)

// Client talks to the GearGuard API over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// NewClient creates a Client against cfg.BaseURL. A nil logger disables
// call logging.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		log: log,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// do issues one request and decodes the JSON response into out (when non-nil).
// Each call is stamped with a fresh X-Request-ID for log correlation.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	reqID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		mapped := mapTransportError(ctx, err)
		c.log.Warn("api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(mapped),
		)
		return mapped
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func mapTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return ErrUnavailable
	}
	// http.Client wraps dial errors in *url.Error.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrUnavailable
	}
	return err
}

// ── payloads ─────────────────────────────────────────────────────────────────

// TeamPayload is the create/update body for a team.
type TeamPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TechnicianPayload is the create/update body for a technician.
type TechnicianPayload struct {
	UserID         int    `json:"user_id"`
	Team           int    `json:"team"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

// EquipmentPayload mirrors the equipment form field set exactly. Unset
// optional fields travel as empty strings, not omitted. The reference ids
// stay strings for the same reason.
type EquipmentPayload struct {
	Name              string `json:"name"`
	SerialNumber      string `json:"serial_number"`
	Category          string `json:"category"`
	Department        string `json:"department"`
	AssignedEmployee  string `json:"assigned_employee"`
	MaintenanceTeam   string `json:"maintenance_team"`
	DefaultTechnician string `json:"default_technician"`
	PurchaseDate      string `json:"purchase_date"`
	WarrantyExpiry    string `json:"warranty_expiry"`
	Location          string `json:"location"`
	Notes             string `json:"notes"`
}

// RequestPayload is the create body for a maintenance request. Team and
// technician are filled in server-side from the equipment record.
type RequestPayload struct {
	Subject       string  `json:"subject"`
	Description   string  `json:"description"`
	Equipment     int     `json:"equipment"`
	RequestType   string  `json:"request_type"`
	Priority      string  `json:"priority"`
	ScheduledDate *string `json:"scheduled_date"`
	RequestedBy   *int    `json:"requested_by"`
}

// ── teams ────────────────────────────────────────────────────────────────────

func (c *Client) ListTeams(ctx context.Context) ([]domain.Team, error) {
	var out []domain.Team
	err := c.do(ctx, http.MethodGet, "/teams/", nil, &out)
	return out, err
}

func (c *Client) CreateTeam(ctx context.Context, p TeamPayload) (*domain.Team, error) {
	var out domain.Team
	if err := c.do(ctx, http.MethodPost, "/teams/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTeam(ctx context.Context, id int, p TeamPayload) (*domain.Team, error) {
	var out domain.Team
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/teams/%d/", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTeam(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d/", id), nil, nil)
}

func (c *Client) TeamTechnicians(ctx context.Context, id int) ([]domain.Technician, error) {
	var out []domain.Technician
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/technicians/", id), nil, &out)
	return out, err
}

// ── technicians ──────────────────────────────────────────────────────────────

func (c *Client) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	var out []domain.Technician
	err := c.do(ctx, http.MethodGet, "/technicians/", nil, &out)
	return out, err
}

func (c *Client) CreateTechnician(ctx context.Context, p TechnicianPayload) (*domain.Technician, error) {
	var out domain.Technician
	if err := c.do(ctx, http.MethodPost, "/technicians/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTechnician(ctx context.Context, id int, p TechnicianPayload) (*domain.Technician, error) {
	var out domain.Technician
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/technicians/%d/", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTechnician(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/technicians/%d/", id), nil, nil)
}

// ── users ────────────────────────────────────────────────────────────────────

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, http.MethodGet, "/users/", nil, &out)
	return out, err
}

// ── equipment ────────────────────────────────────────────────────────────────

func (c *Client) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	var out []domain.Equipment
	err := c.do(ctx, http.MethodGet, "/equipment/", nil, &out)
	return out, err
}

func (c *Client) GetEquipment(ctx context.Context, id int) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/equipment/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEquipment(ctx context.Context, p EquipmentPayload) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.do(ctx, http.MethodPost, "/equipment/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEquipment(ctx context.Context, id int, p EquipmentPayload) (*domain.Equipment, error) {
	var out domain.Equipment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/equipment/%d/", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEquipment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/equipment/%d/", id), nil, nil)
}

func (c *Client) EquipmentRequests(ctx context.Context, id int) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/equipment/%d/maintenance_requests/", id), nil, &out)
	return out, err
}

func (c *Client) EquipmentByDepartment(ctx context.Context, department string) ([]domain.Equipment, error) {
	var out []domain.Equipment
	q := url.Values{"department": {department}}
	err := c.do(ctx, http.MethodGet, "/equipment/by_department/?"+q.Encode(), nil, &out)
	return out, err
}

// ── maintenance requests ─────────────────────────────────────────────────────

func (c *Client) ListRequests(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := c.do(ctx, http.MethodGet, "/requests/", nil, &out)
	return out, err
}

func (c *Client) GetRequest(ctx context.Context, id int) (*domain.MaintenanceRequest, error) {
	var out domain.MaintenanceRequest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/requests/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRequest(ctx context.Context, p RequestPayload) (*domain.MaintenanceRequest, error) {
	var out domain.MaintenanceRequest
	if err := c.do(ctx, http.MethodPost, "/requests/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRequest(ctx context.Context, id int, p RequestPayload) (*domain.MaintenanceRequest, error) {
	var out domain.MaintenanceRequest
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/requests/%d/", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRequest(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/requests/%d/", id), nil, nil)
}

// UpdateRequestStage moves a request to a new kanban stage.
func (c *Client) UpdateRequestStage(ctx context.Context, id int, stage domain.Stage) error {
	body := struct {
		Stage domain.Stage `json:"stage"`
	}{Stage: stage}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/requests/%d/update_stage/", id), body, nil)
}

// AssignTechnician sets the assigned technician on a request.
func (c *Client) AssignTechnician(ctx context.Context, id, technicianID int) error {
	body := struct {
		TechnicianID int `json:"technician_id"`
	}{TechnicianID: technicianID}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/requests/%d/assign_technician/", id), body, nil)
}

func (c *Client) RequestsByStage(ctx context.Context, stage domain.Stage) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	q := url.Values{"stage": {string(stage)}}
	err := c.do(ctx, http.MethodGet, "/requests/by_stage/?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) RequestsByTeam(ctx context.Context, teamID int) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	q := url.Values{"team_id": {fmt.Sprint(teamID)}}
	err := c.do(ctx, http.MethodGet, "/requests/by_team/?"+q.Encode(), nil, &out)
	return out, err
}

// CalendarRequests returns the scheduled preventive requests for the calendar.
func (c *Client) CalendarRequests(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := c.do(ctx, http.MethodGet, "/requests/calendar/", nil, &out)
	return out, err
}

func (c *Client) RequestStatistics(ctx context.Context) (*domain.Statistics, error) {
	var out domain.Statistics
	if err := c.do(ctx, http.MethodGet, "/requests/statistics/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
