// Package timeaccount derives the base overtime balance of an employee from
// their recorded time entries. Only the calculated balance lives here;
// manual adjustments are reconciled on top of it by the balance package.
package timeaccount

import (
	"context"
	"fmt"
	"sort"
	"time"

	"peopleflow/models"
	"peopleflow/store"
)

// WeeklySummary is one calendar week of worked vs. planned hours.
type WeeklySummary struct {
	WeekStart     time.Time `json:"weekStart"`
	Year          int       `json:"year"`
	WeekNumber    int       `json:"weekNumber"`
	PlannedHours  float64   `json:"plannedHours"`
	ActualHours   float64   `json:"actualHours"`
	OvertimeHours float64   `json:"overtimeHours"`
	DaysWorked    int       `json:"daysWorked"`
}

type Service struct {
	employees store.Employees
}

func NewService(employees store.Employees) *Service {
	return &Service{employees: employees}
}

// CalculateBalance computes the base overtime balance from the employee's
// time entries: per week with recorded time, actual minus the weekly target.
// Weeks without any entry do not count against the balance.
func CalculateBalance(emp *models.Employee) (float64, []WeeklySummary) {
	if len(emp.TimeEntries) == 0 {
		return 0, nil
	}

	byWeek := make(map[time.Time][]models.TimeEntry)
	for _, entry := range emp.TimeEntries {
		ws := weekStart(entry.Date)
		byWeek[ws] = append(byWeek[ws], entry)
	}

	weeks := make([]time.Time, 0, len(byWeek))
	for ws := range byWeek {
		weeks = append(weeks, ws)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	var total float64
	summaries := make([]WeeklySummary, 0, len(weeks))
	for _, ws := range weeks {
		var actual float64
		days := make(map[string]bool)
		for _, entry := range byWeek[ws] {
			actual += entry.Duration
			days[entry.Date.Format("2006-01-02")] = true
		}

		planned := emp.WeeklyTargetHours
		overtime := actual - planned
		total += overtime

		year, week := ws.ISOWeek()
		summaries = append(summaries, WeeklySummary{
			WeekStart:     ws,
			Year:          year,
			WeekNumber:    week,
			PlannedHours:  planned,
			ActualHours:   actual,
			OvertimeHours: overtime,
			DaysWorked:    len(days),
		})
	}

	return total, summaries
}

// Recalculate recomputes and persists the base balance for one employee.
func (s *Service) Recalculate(ctx context.Context, employeeID string) (*models.Employee, error) {
	emp, err := s.employees.ByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	balance, _ := CalculateBalance(emp)
	emp.OvertimeBalance = balance
	emp.LastTimeCalculated = time.Now()

	if err := s.employees.Save(ctx, emp); err != nil {
		return nil, fmt.Errorf("save employee %s: %w", employeeID, err)
	}
	return emp, nil
}

// RecalculateAll refreshes every employee's base balance. Employees without
// time entries end up at zero, like a fresh account.
func (s *Service) RecalculateAll(ctx context.Context) error {
	employees, err := s.employees.All(ctx)
	if err != nil {
		return err
	}
	for i := range employees {
		if _, err := s.Recalculate(ctx, employees[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// weekStart normalizes a date to the Monday of its ISO week.
func weekStart(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
