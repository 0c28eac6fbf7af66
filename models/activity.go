package models

import (
	"time"
)

type ActivityType string

const (
	ActivityAdjustmentCreated  ActivityType = "adjustment_created"
	ActivityAdjustmentApproved ActivityType = "adjustment_approved"
	ActivityAdjustmentRejected ActivityType = "adjustment_rejected"
	ActivityAdjustmentDeleted  ActivityType = "adjustment_deleted"
	ActivityOvertimeRecalc     ActivityType = "overtime_recalculated"
)

// Activity is an audit trail entry for overtime-related actions.
type Activity struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time    `json:"createdAt"`
	Type         ActivityType `gorm:"not null;size:40;index" json:"type"`
	UserID       uint         `gorm:"not null" json:"userId"`
	UserName     string       `gorm:"size:200" json:"userName"`
	EmployeeID   string       `gorm:"size:36;index" json:"employeeId"`
	EmployeeName string       `gorm:"size:200" json:"employeeName"`
	Message      string       `gorm:"size:500" json:"message"`
}
