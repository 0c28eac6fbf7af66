package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"peopleflow/models"
)

// In-memory store implementations used by tests and the -db=memory dev
// mode. They enforce the same lifecycle rules as the gorm implementations.

type MemoryAdjustments struct {
	mu          sync.RWMutex
	adjustments map[string]models.OvertimeAdjustment
}

func NewMemoryAdjustments() *MemoryAdjustments {
	return &MemoryAdjustments{adjustments: make(map[string]models.OvertimeAdjustment)}
}

func (m *MemoryAdjustments) Create(_ context.Context, adj *models.OvertimeAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	adj.ID = uuid.NewString()
	adj.Status = models.StatusPending
	adj.CreatedAt = time.Now()
	m.adjustments[adj.ID] = *adj
	return nil
}

func (m *MemoryAdjustments) ByID(_ context.Context, id string) (*models.OvertimeAdjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	adj, ok := m.adjustments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &adj, nil
}

func (m *MemoryAdjustments) ByEmployee(_ context.Context, employeeID string) ([]models.OvertimeAdjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.OvertimeAdjustment
	for _, adj := range m.adjustments {
		if adj.EmployeeID == employeeID {
			out = append(out, adj)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryAdjustments) Pending(_ context.Context) ([]models.OvertimeAdjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.OvertimeAdjustment
	for _, adj := range m.adjustments {
		if adj.Status == models.StatusPending {
			out = append(out, adj)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryAdjustments) Resolve(_ context.Context, id string, status models.AdjustmentStatus, approverID uint, approverName string) (*models.OvertimeAdjustment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	adj, ok := m.adjustments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if adj.Status != models.StatusPending {
		return nil, ErrAlreadyResolved
	}

	adj.Status = status
	adj.ApprovedBy = approverID
	adj.ApproverName = approverName
	adj.ApprovedAt = time.Now()
	m.adjustments[id] = adj
	return &adj, nil
}

func (m *MemoryAdjustments) Delete(_ context.Context, id string) (*models.OvertimeAdjustment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	adj, ok := m.adjustments[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.adjustments, id)
	return &adj, nil
}

func (m *MemoryAdjustments) ApprovedTotal(_ context.Context, employeeID string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total float64
	for _, adj := range m.adjustments {
		if adj.EmployeeID == employeeID && adj.Status == models.StatusApproved {
			total += adj.Hours
		}
	}
	return total, nil
}

func sortNewestFirst(adjustments []models.OvertimeAdjustment) {
	sort.Slice(adjustments, func(i, j int) bool {
		return adjustments[i].CreatedAt.After(adjustments[j].CreatedAt)
	})
}

type MemoryEmployees struct {
	mu        sync.RWMutex
	employees map[string]models.Employee
}

func NewMemoryEmployees() *MemoryEmployees {
	return &MemoryEmployees{employees: make(map[string]models.Employee)}
}

func (m *MemoryEmployees) ByID(_ context.Context, id string) (*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &emp, nil
}

func (m *MemoryEmployees) All(_ context.Context) ([]models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (m *MemoryEmployees) Save(_ context.Context, emp *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.UpdatedAt = time.Now()
	m.employees[emp.ID] = *emp
	return nil
}

type MemoryUsers struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	nextID uint
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[uint]models.User), nextID: 1}
}

func (m *MemoryUsers) ByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryUsers) ByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

type MemoryActivities struct {
	mu         sync.RWMutex
	activities []models.Activity
}

func NewMemoryActivities() *MemoryActivities {
	return &MemoryActivities{}
}

func (m *MemoryActivities) Log(_ context.Context, activity models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity.ID = uint(len(m.activities) + 1)
	activity.CreatedAt = time.Now()
	m.activities = append(m.activities, activity)
	return nil
}

func (m *MemoryActivities) Recent(_ context.Context, limit int) ([]models.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Activity, 0, limit)
	for i := len(m.activities) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.activities[i])
	}
	return out, nil
}

// Interface conformance.
var (
	_ Adjustments = (*MemoryAdjustments)(nil)
	_ Employees   = (*MemoryEmployees)(nil)
	_ Users       = (*MemoryUsers)(nil)
	_ Activities  = (*MemoryActivities)(nil)
	_ Adjustments = (*GormAdjustments)(nil)
	_ Employees   = (*GormEmployees)(nil)
	_ Users       = (*GormUsers)(nil)
	_ Activities  = (*GormActivities)(nil)
)
