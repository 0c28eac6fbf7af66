package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"peopleflow/models"
)

// GormAdjustments persists adjustments in postgres.
type GormAdjustments struct {
	db *gorm.DB
}

func NewGormAdjustments(db *gorm.DB) *GormAdjustments {
	return &GormAdjustments{db: db}
}

func (s *GormAdjustments) Create(ctx context.Context, adj *models.OvertimeAdjustment) error {
	adj.ID = uuid.NewString()
	adj.Status = models.StatusPending
	adj.CreatedAt = time.Now()
	return s.db.WithContext(ctx).Create(adj).Error
}

func (s *GormAdjustments) ByID(ctx context.Context, id string) (*models.OvertimeAdjustment, error) {
	var adj models.OvertimeAdjustment
	err := s.db.WithContext(ctx).First(&adj, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

func (s *GormAdjustments) ByEmployee(ctx context.Context, employeeID string) ([]models.OvertimeAdjustment, error) {
	var adjustments []models.OvertimeAdjustment
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at desc").
		Find(&adjustments).Error
	return adjustments, err
}

func (s *GormAdjustments) Pending(ctx context.Context) ([]models.OvertimeAdjustment, error) {
	var adjustments []models.OvertimeAdjustment
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("created_at desc").
		Find(&adjustments).Error
	return adjustments, err
}

// Resolve moves a pending adjustment to approved or rejected. The guarded
// UPDATE serializes concurrent decisions on the same record: the second
// caller matches zero rows and gets ErrAlreadyResolved.
func (s *GormAdjustments) Resolve(ctx context.Context, id string, status models.AdjustmentStatus, approverID uint, approverName string) (*models.OvertimeAdjustment, error) {
	res := s.db.WithContext(ctx).
		Model(&models.OvertimeAdjustment{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"approved_by":   approverID,
			"approver_name": approverName,
			"approved_at":   time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.ByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyResolved
	}
	return s.ByID(ctx, id)
}

func (s *GormAdjustments) Delete(ctx context.Context, id string) (*models.OvertimeAdjustment, error) {
	adj, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.OvertimeAdjustment{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return adj, nil
}

func (s *GormAdjustments) ApprovedTotal(ctx context.Context, employeeID string) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).
		Model(&models.OvertimeAdjustment{}).
		Where("employee_id = ? AND status = ?", employeeID, models.StatusApproved).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).Error
	return total, err
}

type GormEmployees struct {
	db *gorm.DB
}

func NewGormEmployees(db *gorm.DB) *GormEmployees {
	return &GormEmployees{db: db}
}

func (s *GormEmployees) ByID(ctx context.Context, id string) (*models.Employee, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).Preload("TimeEntries").First(&emp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *GormEmployees) All(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).Preload("TimeEntries").Order("last_name asc").Find(&employees).Error
	return employees, err
}

func (s *GormEmployees) Save(ctx context.Context, emp *models.Employee) error {
	return s.db.WithContext(ctx).Save(emp).Error
}

type GormUsers struct {
	db *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (s *GormUsers) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUsers) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUsers) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

type GormActivities struct {
	db *gorm.DB
}

func NewGormActivities(db *gorm.DB) *GormActivities {
	return &GormActivities{db: db}
}

func (s *GormActivities) Log(ctx context.Context, activity models.Activity) error {
	return s.db.WithContext(ctx).Create(&activity).Error
}

func (s *GormActivities) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&activities).Error
	return activities, err
}
