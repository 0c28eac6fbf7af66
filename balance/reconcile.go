// Package balance folds approved overtime adjustments into the calculated
// base balance. It is pure: no storage, no HTTP, no caching between calls.
package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"peopleflow/models"
)

// Summary is the derived view of an employee's overtime account.
type Summary struct {
	CalculatedBalance float64 `json:"calculatedBalance"`
	AdjustmentsTotal  float64 `json:"adjustmentsTotal"`
	FinalBalance      float64 `json:"finalBalance"`
}

// Reconcile recomputes the summary from scratch. Only approved adjustments
// contribute; pending and rejected ones are excluded from the sum entirely.
// Callers re-run this on every list fetch rather than patching a previous
// result, so the summary can never drift from the canonical list.
func Reconcile(calculated float64, adjustments []models.OvertimeAdjustment) Summary {
	total := decimal.Zero
	for _, adj := range adjustments {
		if adj.Status != models.StatusApproved {
			continue
		}
		total = total.Add(decimal.NewFromFloat(adj.Hours))
	}

	adjustmentsTotal, _ := total.Float64()
	finalBalance, _ := decimal.NewFromFloat(calculated).Add(total).Float64()

	return Summary{
		CalculatedBalance: calculated,
		AdjustmentsTotal:  adjustmentsTotal,
		FinalBalance:      finalBalance,
	}
}

// FormatHours renders a balance or adjustment for display. Values >= 0 get
// an explicit leading plus; everything is shown with one decimal place.
func FormatHours(hours float64) string {
	if hours >= 0 {
		return fmt.Sprintf("+%.1f Std", hours)
	}
	return fmt.Sprintf("%.1f Std", hours)
}
