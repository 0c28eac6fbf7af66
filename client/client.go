// Package client is the browser-side orchestration of the overtime
// workflow: input validation before any request, single-flight mutation
// guards, and the re-fetch-then-reconcile cycle that keeps the displayed
// balance in sync with the backend. Rendering stays out; the types here
// expose view state for whatever UI layer sits on top.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"peopleflow/models"
)

// Viewer is the read-only identity context seeded once from the
// server-rendered page. It gates which controls are offered; the backend
// re-validates every action regardless.
type Viewer struct {
	ID   uint
	Name string
	Role models.Role
}

// CanResolve reports whether approve/reject/delete controls are offered.
func (v Viewer) CanResolve() bool {
	return v.Role == models.RoleAdmin || v.Role == models.RoleManager
}

// ValidationError is raised locally, before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// APIError carries a backend-reported failure (success:false). The message
// is surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// PendingAdjustment is a pending-queue row as delivered by the backend.
type PendingAdjustment struct {
	models.OvertimeAdjustment
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
}

// Client talks to the overtime API. The session token is forwarded as the
// cookie the auth middleware expects.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		token:   token,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Name    string          `json:"name"`
}

// do performs one request and decodes the response envelope. A transport
// failure and a success:false response are both returned as errors but stay
// distinguishable for the caller.
func (c *Client) do(ctx context.Context, method, path string, form url.Values) (*envelope, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: c.token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if !env.Success {
		message := env.Error
		if message == "" {
			message = "Unbekannter Fehler"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return &env, nil
}

func (c *Client) EmployeeAdjustments(ctx context.Context, employeeID string) ([]models.OvertimeAdjustment, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/overtime/employee/"+employeeID+"/adjustments", nil)
	if err != nil {
		return nil, err
	}
	var adjustments []models.OvertimeAdjustment
	if err := json.Unmarshal(env.Data, &adjustments); err != nil {
		return nil, err
	}
	return adjustments, nil
}

func (c *Client) SubmitAdjustment(ctx context.Context, employeeID string, form url.Values) error {
	_, err := c.do(ctx, http.MethodPost, "/api/overtime/employee/"+employeeID+"/adjustment", form)
	return err
}

func (c *Client) PendingAdjustments(ctx context.Context) ([]PendingAdjustment, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/overtime/adjustments/pending", nil)
	if err != nil {
		return nil, err
	}
	var rows []PendingAdjustment
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ResolveAdjustment submits an approve or reject decision.
func (c *Client) ResolveAdjustment(ctx context.Context, adjustmentID, action string) error {
	form := url.Values{}
	form.Set("action", action)
	_, err := c.do(ctx, http.MethodPost, "/api/overtime/adjustments/"+adjustmentID+"/approve", form)
	return err
}

func (c *Client) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/overtime/adjustments/"+adjustmentID, nil)
	return err
}

// EmployeeName resolves a display name, best-effort.
func (c *Client) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/employees/"+employeeID+"/name", nil)
	if err != nil {
		return "", err
	}
	return env.Name, nil
}

// RecalculateOvertime asks the backend to recompute the base balance from
// the recorded time entries and returns the fresh value.
func (c *Client) RecalculateOvertime(ctx context.Context, employeeID string) (float64, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/timetracking/employee/"+employeeID+"/overtime", nil)
	if err != nil {
		return 0, err
	}
	var data struct {
		OvertimeBalance float64 `json:"overtimeBalance"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return 0, err
	}
	return data.OvertimeBalance, nil
}
