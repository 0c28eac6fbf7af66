package client

import (
	"context"
	"sync"

	"peopleflow/balance"
)

// namePlaceholder labels rows whose employee lookup failed. A failed lookup
// never blocks the row itself.
const namePlaceholder = "Unbekannt"

// PendingRow is one adjustment awaiting a decision, ready for display.
type PendingRow struct {
	Adjustment   PendingAdjustment
	EmployeeName string
	HoursDisplay string
	TypeDisplay  string
}

// PendingView is the render state of the pending queue. Visible is false
// for non-privileged viewers; Err distinguishes "failed to load" from an
// empty queue.
type PendingView struct {
	Visible bool
	Err     error
	Rows    []PendingRow
	Count   int
}

// PendingQueue presents all adjustments awaiting a decision, across all
// employees, to admin and manager viewers.
type PendingQueue struct {
	api    *Client
	viewer Viewer

	mu      sync.Mutex
	busy    bool
	rows    []PendingRow
	loadErr error
}

func NewPendingQueue(api *Client, viewer Viewer) *PendingQueue {
	return &PendingQueue{api: api, viewer: viewer}
}

// Refresh loads the queue. For viewers without the admin or manager role it
// fetches nothing and leaves the view hidden.
func (q *PendingQueue) Refresh(ctx context.Context) error {
	if !q.viewer.CanResolve() {
		q.mu.Lock()
		q.rows = nil
		q.loadErr = nil
		q.mu.Unlock()
		return nil
	}

	pending, err := q.api.PendingAdjustments(ctx)
	if err != nil {
		q.mu.Lock()
		q.loadErr = err
		q.mu.Unlock()
		return err
	}

	rows := make([]PendingRow, 0, len(pending))
	for _, adj := range pending {
		rows = append(rows, PendingRow{
			Adjustment:   adj,
			EmployeeName: q.resolveName(ctx, adj),
			HoursDisplay: balance.FormatHours(adj.Hours),
			TypeDisplay:  adj.DisplayType(),
		})
	}

	q.mu.Lock()
	q.rows = rows
	q.loadErr = nil
	q.mu.Unlock()
	return nil
}

// resolveName prefers a fresh lookup and falls back to the name the backend
// already attached to the row, then to the placeholder.
func (q *PendingQueue) resolveName(ctx context.Context, adj PendingAdjustment) string {
	if name, err := q.api.EmployeeName(ctx, adj.EmployeeID); err == nil && name != "" {
		return name
	}
	if adj.EmployeeName != "" {
		return adj.EmployeeName
	}
	return namePlaceholder
}

// Approve decides one queue entry. On success the row is removed locally;
// the next Refresh stays authoritative.
func (q *PendingQueue) Approve(ctx context.Context, adjustmentID string) error {
	return q.decide(ctx, adjustmentID, "approve")
}

func (q *PendingQueue) Reject(ctx context.Context, adjustmentID string) error {
	return q.decide(ctx, adjustmentID, "reject")
}

func (q *PendingQueue) decide(ctx context.Context, adjustmentID, action string) error {
	if !q.viewer.CanResolve() {
		return ErrNotPermitted
	}

	q.mu.Lock()
	if q.busy {
		q.mu.Unlock()
		return ErrBusy
	}
	q.busy = true
	q.mu.Unlock()
	defer func() {
		q.mu.Lock()
		q.busy = false
		q.mu.Unlock()
	}()

	if err := q.api.ResolveAdjustment(ctx, adjustmentID, action); err != nil {
		// Failure leaves the row in place; a later Refresh reconciles.
		return err
	}

	q.mu.Lock()
	kept := q.rows[:0]
	for _, row := range q.rows {
		if row.Adjustment.ID != adjustmentID {
			kept = append(kept, row)
		}
	}
	q.rows = kept
	q.mu.Unlock()
	return nil
}

// View returns the current render state.
func (q *PendingQueue) View() PendingView {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.viewer.CanResolve() {
		return PendingView{}
	}

	rows := make([]PendingRow, len(q.rows))
	copy(rows, q.rows)
	return PendingView{
		Visible: true,
		Err:     q.loadErr,
		Rows:    rows,
		Count:   len(rows),
	}
}
