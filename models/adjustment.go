package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type AdjustmentType string

const (
	AdjustmentCorrection AdjustmentType = "correction"
	AdjustmentManual     AdjustmentType = "manual"
	AdjustmentBonus      AdjustmentType = "bonus"
	AdjustmentPenalty    AdjustmentType = "penalty"
)

type AdjustmentStatus string

const (
	StatusPending  AdjustmentStatus = "pending"
	StatusApproved AdjustmentStatus = "approved"
	StatusRejected AdjustmentStatus = "rejected"
)

// OvertimeAdjustment is a discrete, signed correction to an employee's
// overtime balance. It starts out pending and must be approved before it
// counts toward the final balance.
type OvertimeAdjustment struct {
	ID           string           `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID   string           `gorm:"not null;index;size:36" json:"employeeId"`
	Type         AdjustmentType   `gorm:"not null;size:20" json:"type"`
	Hours        float64          `gorm:"not null" json:"hours"`
	Reason       string           `gorm:"not null;size:500" json:"reason"`
	Description  string           `gorm:"size:2000" json:"description"`
	Status       AdjustmentStatus `gorm:"not null;size:20;index" json:"status"`
	AdjustedBy   uint             `gorm:"not null" json:"adjustedBy"`
	AdjusterName string           `gorm:"size:200" json:"adjusterName"`
	ApprovedBy   uint             `json:"approvedBy,omitempty"`
	ApproverName string           `gorm:"size:200" json:"approverName,omitempty"`
	ApprovedAt   time.Time        `json:"approvedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func (a OvertimeAdjustment) IsPending() bool {
	return a.Status == StatusPending
}

// DisplayType gibt den deutschen Anzeigenamen für den Anpassungstyp zurück.
func (a OvertimeAdjustment) DisplayType() string {
	switch a.Type {
	case AdjustmentCorrection:
		return "Korrektur"
	case AdjustmentManual:
		return "Manuelle Anpassung"
	case AdjustmentBonus:
		return "Bonus/Ausgleich"
	case AdjustmentPenalty:
		return "Abzug"
	default:
		return string(a.Type)
	}
}

// StatusDisplay gibt den deutschen Anzeigenamen für den Status zurück.
func (a OvertimeAdjustment) StatusDisplay() string {
	switch a.Status {
	case StatusPending:
		return "Ausstehend"
	case StatusApproved:
		return "Genehmigt"
	case StatusRejected:
		return "Abgelehnt"
	default:
		return string(a.Status)
	}
}

// ParseHours parses a submitted hours value. Anything that is not a finite
// number is rejected before it reaches the store.
func ParseHours(s string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("ungültige Stundenangabe: %q", s)
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("ungültige Stundenangabe: %q", s)
	}
	return hours, nil
}

// ValidReason reports whether a justification is non-empty after trimming.
func ValidReason(reason string) bool {
	return strings.TrimSpace(reason) != ""
}
