package client

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"peopleflow/balance"
	"peopleflow/models"
)

// ErrBusy means a mutation is already in flight. The UI keeps the control
// disabled until the current request completes, success or failure.
var ErrBusy = errors.New("client: request already in flight")

// ErrNotPermitted means the viewer's role does not offer this control.
var ErrNotPermitted = errors.New("client: action not permitted for this role")

// AdjustmentForm is the raw submit input, untrusted until validated.
type AdjustmentForm struct {
	Type        string
	Hours       string
	Reason      string
	Description string
}

// Controller drives the adjustment lifecycle for one employee's overtime
// view. Mutations never patch local state: after a successful request the
// canonical list is re-fetched and the summary reconciled from scratch.
type Controller struct {
	api    *Client
	viewer Viewer

	mu          sync.Mutex
	busy        bool
	employeeID  string
	baseBalance float64
	adjustments []models.OvertimeAdjustment
	summary     balance.Summary
}

// NewController builds the view state for one employee. The base balance is
// seeded from the rendered page and later refreshed via Recalculate.
func NewController(api *Client, viewer Viewer, employeeID string, baseBalance float64) *Controller {
	return &Controller{
		api:         api,
		viewer:      viewer,
		employeeID:  employeeID,
		baseBalance: baseBalance,
		summary:     balance.Reconcile(baseBalance, nil),
	}
}

// begin claims the single mutation slot. release via end, in a defer.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// Refresh re-fetches the canonical adjustment list and reconciles the
// summary. Every successful mutation funnels through here.
func (c *Controller) Refresh(ctx context.Context) error {
	adjustments, err := c.api.EmployeeAdjustments(ctx, c.employeeID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.adjustments = adjustments
	c.summary = balance.Reconcile(c.baseBalance, adjustments)
	c.mu.Unlock()
	return nil
}

// Submit validates locally and proposes a new adjustment. Invalid input
// never reaches the network. Any role may propose.
func (c *Controller) Submit(ctx context.Context, form AdjustmentForm) error {
	if _, err := models.ParseHours(form.Hours); err != nil {
		return &ValidationError{Field: "hours", Message: "Bitte geben Sie eine gültige Stundenanzahl ein."}
	}
	if !models.ValidReason(form.Reason) {
		return &ValidationError{Field: "reason", Message: "Bitte geben Sie eine Begründung an."}
	}

	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	values := url.Values{}
	values.Set("type", form.Type)
	values.Set("hours", form.Hours)
	values.Set("reason", form.Reason)
	values.Set("description", form.Description)
	values.Set("employeeId", c.employeeID)

	if err := c.api.SubmitAdjustment(ctx, c.employeeID, values); err != nil {
		return err
	}

	return c.Refresh(ctx)
}

// Approve moves a pending adjustment to approved and re-fetches.
func (c *Controller) Approve(ctx context.Context, adjustmentID string) error {
	return c.resolve(ctx, adjustmentID, "approve")
}

// Reject moves a pending adjustment to rejected and re-fetches.
func (c *Controller) Reject(ctx context.Context, adjustmentID string) error {
	return c.resolve(ctx, adjustmentID, "reject")
}

func (c *Controller) resolve(ctx context.Context, adjustmentID, action string) error {
	if !c.viewer.CanResolve() {
		return ErrNotPermitted
	}

	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.api.ResolveAdjustment(ctx, adjustmentID, action); err != nil {
		return err
	}

	return c.Refresh(ctx)
}

// Delete removes an adjustment in any status. If it was approved, the
// re-fetch drops its hours from the reconciled balance.
func (c *Controller) Delete(ctx context.Context, adjustmentID string) error {
	if !c.viewer.CanResolve() {
		return ErrNotPermitted
	}

	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.api.DeleteAdjustment(ctx, adjustmentID); err != nil {
		return err
	}

	return c.Refresh(ctx)
}

// Recalculate triggers the backend base-balance recomputation and then
// refreshes the list so the summary reflects both data sources.
func (c *Controller) Recalculate(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	baseBalance, err := c.api.RecalculateOvertime(ctx, c.employeeID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.baseBalance = baseBalance
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Summary returns the last reconciled view-model.
func (c *Controller) Summary() balance.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// Adjustments returns a copy of the last fetched list.
func (c *Controller) Adjustments() []models.OvertimeAdjustment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.OvertimeAdjustment, len(c.adjustments))
	copy(out, c.adjustments)
	return out
}

// FinalBalanceDisplay renders the reconciled balance for the header badge.
func (c *Controller) FinalBalanceDisplay() string {
	return balance.FormatHours(c.Summary().FinalBalance)
}
