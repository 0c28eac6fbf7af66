package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peopleflow/models"
)

func newPending(t *testing.T, s *MemoryAdjustments, employeeID string, hours float64) *models.OvertimeAdjustment {
	t.Helper()
	adj := &models.OvertimeAdjustment{
		EmployeeID:   employeeID,
		Type:         models.AdjustmentManual,
		Hours:        hours,
		Reason:       "Wochenendeinsatz",
		AdjustedBy:   7,
		AdjusterName: "Erika Muster",
	}
	require.NoError(t, s.Create(context.Background(), adj))
	return adj
}

func TestCreate_ForcesPendingAndAssignsID(t *testing.T) {
	s := NewMemoryAdjustments()

	adj := &models.OvertimeAdjustment{
		EmployeeID: "emp-1",
		Hours:      2,
		Reason:     "Korrektur",
		Status:     models.StatusApproved, // must not survive Create
	}
	require.NoError(t, s.Create(context.Background(), adj))

	assert.NotEmpty(t, adj.ID)
	assert.Equal(t, models.StatusPending, adj.Status)
	assert.False(t, adj.CreatedAt.IsZero())
}

func TestResolve_ApprovesPending(t *testing.T) {
	s := NewMemoryAdjustments()
	adj := newPending(t, s, "emp-1", 3)

	resolved, err := s.Resolve(context.Background(), adj.ID, models.StatusApproved, 42, "Max Admin")
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, resolved.Status)
	assert.Equal(t, uint(42), resolved.ApprovedBy)
	assert.Equal(t, "Max Admin", resolved.ApproverName)
	assert.False(t, resolved.ApprovedAt.IsZero())
}

func TestResolve_SecondDecisionFails(t *testing.T) {
	s := NewMemoryAdjustments()
	adj := newPending(t, s, "emp-1", 3)

	_, err := s.Resolve(context.Background(), adj.ID, models.StatusApproved, 42, "Max Admin")
	require.NoError(t, err)

	// Approved and rejected are terminal; neither re-approval nor a late
	// rejection may go through.
	_, err = s.Resolve(context.Background(), adj.ID, models.StatusRejected, 43, "Moritz Manager")
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	_, err = s.Resolve(context.Background(), adj.ID, models.StatusApproved, 43, "Moritz Manager")
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	current, err := s.ByID(context.Background(), adj.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, current.Status)
	assert.Equal(t, "Max Admin", current.ApproverName)
}

func TestResolve_UnknownID(t *testing.T) {
	s := NewMemoryAdjustments()

	_, err := s.Resolve(context.Background(), "missing", models.StatusApproved, 1, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_AnyStatus(t *testing.T) {
	s := NewMemoryAdjustments()
	adj := newPending(t, s, "emp-1", 3)
	_, err := s.Resolve(context.Background(), adj.ID, models.StatusApproved, 1, "Max Admin")
	require.NoError(t, err)

	deleted, err := s.Delete(context.Background(), adj.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, deleted.Status)

	_, err = s.ByID(context.Background(), adj.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApprovedTotal_IgnoresPendingAndRejected(t *testing.T) {
	s := NewMemoryAdjustments()
	ctx := context.Background()

	approved := newPending(t, s, "emp-1", 3)
	_, err := s.Resolve(ctx, approved.ID, models.StatusApproved, 1, "Max Admin")
	require.NoError(t, err)

	rejected := newPending(t, s, "emp-1", 2)
	_, err = s.Resolve(ctx, rejected.ID, models.StatusRejected, 1, "Max Admin")
	require.NoError(t, err)

	newPending(t, s, "emp-1", -1) // stays pending
	newPending(t, s, "emp-2", 50) // other employee

	total, err := s.ApprovedTotal(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)
}

func TestPending_FiltersAcrossEmployees(t *testing.T) {
	s := NewMemoryAdjustments()
	ctx := context.Background()

	a := newPending(t, s, "emp-1", 1)
	newPending(t, s, "emp-2", 2)
	_, err := s.Resolve(ctx, a.ID, models.StatusRejected, 1, "Max Admin")
	require.NoError(t, err)

	pending, err := s.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "emp-2", pending[0].EmployeeID)
}
