// Package store persists overtime adjustments, employees, users and the
// activity trail. Handlers depend on the interfaces here; gorm/postgres is
// the production implementation and Memory backs the tests.
package store

import (
	"context"
	"errors"

	"peopleflow/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrAlreadyResolved is returned when a status transition is attempted
	// on an adjustment that is no longer pending. Approved and rejected are
	// terminal; the store is the authority for this rule, not the client.
	ErrAlreadyResolved = errors.New("store: adjustment already resolved")
)

// Adjustments is the adjustment store. Create forces status to pending and
// assigns the id; Resolve only ever moves pending records.
type Adjustments interface {
	Create(ctx context.Context, adj *models.OvertimeAdjustment) error
	ByID(ctx context.Context, id string) (*models.OvertimeAdjustment, error)
	ByEmployee(ctx context.Context, employeeID string) ([]models.OvertimeAdjustment, error)
	Pending(ctx context.Context) ([]models.OvertimeAdjustment, error)
	Resolve(ctx context.Context, id string, status models.AdjustmentStatus, approverID uint, approverName string) (*models.OvertimeAdjustment, error)
	Delete(ctx context.Context, id string) (*models.OvertimeAdjustment, error)
	ApprovedTotal(ctx context.Context, employeeID string) (float64, error)
}

type Employees interface {
	ByID(ctx context.Context, id string) (*models.Employee, error)
	All(ctx context.Context) ([]models.Employee, error)
	Save(ctx context.Context, emp *models.Employee) error
}

type Users interface {
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type Activities interface {
	Log(ctx context.Context, activity models.Activity) error
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
}
