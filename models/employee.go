package models

import (
	"time"
)

// Employee is the personnel record the overtime workflow hangs off of. The
// base overtime balance is owned by the time account calculator; only
// approved adjustments on top of it are managed here.
type Employee struct {
	ID                 string      `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	FirstName          string      `gorm:"not null;size:100" json:"firstName"`
	LastName           string      `gorm:"not null;size:100" json:"lastName"`
	Department         string      `gorm:"size:100" json:"department"`
	WeeklyTargetHours  float64     `gorm:"not null;default:40" json:"weeklyTargetHours"`
	OvertimeBalance    float64     `json:"overtimeBalance"`
	LastTimeCalculated time.Time   `json:"lastTimeCalculated"`
	TimeEntries        []TimeEntry `gorm:"foreignKey:EmployeeID" json:"timeEntries,omitempty"`
}

func (e *Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}

// TimeEntry is a single recorded working-time interval, as delivered by the
// time-tracking integrations.
type TimeEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID string    `gorm:"not null;index;size:36" json:"employeeId"`
	Date       time.Time `gorm:"not null;type:date" json:"date"`
	Duration   float64   `gorm:"not null" json:"duration"`
	Activity   string    `gorm:"size:200" json:"activity"`
}
