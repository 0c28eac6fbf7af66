package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"peopleflow/models"
)

func adj(hours float64, status models.AdjustmentStatus) models.OvertimeAdjustment {
	return models.OvertimeAdjustment{Hours: hours, Status: status}
}

func TestReconcile_OnlyApprovedContribute(t *testing.T) {
	// GIVEN: one approved, one pending, one rejected adjustment
	// THEN: only the approved hours land in the total
	adjustments := []models.OvertimeAdjustment{
		adj(3.0, models.StatusApproved),
		adj(-1.0, models.StatusPending),
		adj(2.0, models.StatusRejected),
	}

	s := Reconcile(12.5, adjustments)

	assert.Equal(t, 12.5, s.CalculatedBalance)
	assert.Equal(t, 3.0, s.AdjustmentsTotal)
	assert.Equal(t, 15.5, s.FinalBalance)
	assert.Equal(t, "+15.5 Std", FormatHours(s.FinalBalance))
}

func TestReconcile_AfterDeletingSoleApproved(t *testing.T) {
	adjustments := []models.OvertimeAdjustment{
		adj(-1.0, models.StatusPending),
		adj(2.0, models.StatusRejected),
	}

	s := Reconcile(12.5, adjustments)

	assert.Equal(t, 0.0, s.AdjustmentsTotal)
	assert.Equal(t, 12.5, s.FinalBalance)
	assert.Equal(t, "+12.5 Std", FormatHours(s.FinalBalance))
}

func TestReconcile_EmptyList(t *testing.T) {
	s := Reconcile(-4.2, nil)

	assert.Equal(t, 0.0, s.AdjustmentsTotal)
	assert.Equal(t, -4.2, s.FinalBalance)
	assert.Equal(t, "-4.2 Std", FormatHours(s.FinalBalance))
}

func TestReconcile_NegativeApprovedHours(t *testing.T) {
	adjustments := []models.OvertimeAdjustment{
		adj(-2.5, models.StatusApproved),
		adj(-7.75, models.StatusApproved),
	}

	s := Reconcile(4.0, adjustments)

	assert.InDelta(t, -10.25, s.AdjustmentsTotal, 1e-9)
	assert.InDelta(t, -6.25, s.FinalBalance, 1e-9)
}

func TestReconcile_Idempotent(t *testing.T) {
	adjustments := []models.OvertimeAdjustment{
		adj(1.5, models.StatusApproved),
		adj(0.25, models.StatusApproved),
		adj(99.0, models.StatusPending),
	}

	first := Reconcile(7.3, adjustments)
	second := Reconcile(7.3, adjustments)

	assert.Equal(t, first, second)
}

func TestReconcile_PendingAndRejectedContributeZero(t *testing.T) {
	// Extreme hours on non-approved adjustments must not leak into the sum.
	adjustments := []models.OvertimeAdjustment{
		adj(100000, models.StatusPending),
		adj(-100000, models.StatusRejected),
	}

	s := Reconcile(0, adjustments)

	assert.Equal(t, 0.0, s.AdjustmentsTotal)
	assert.Equal(t, 0.0, s.FinalBalance)
	assert.Equal(t, "+0.0 Std", FormatHours(s.FinalBalance))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "+3.0 Std", FormatHours(3.0))
	assert.Equal(t, "+0.0 Std", FormatHours(0))
	assert.Equal(t, "-1.5 Std", FormatHours(-1.5))
	assert.Equal(t, "+12.3 Std", FormatHours(12.34))
}
