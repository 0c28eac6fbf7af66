package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"peopleflow/handlers"
	"peopleflow/middleware"
	"peopleflow/models"
	"peopleflow/store"
	"peopleflow/timeaccount"
)

// testEnv runs the real API router on in-memory stores so the client side
// is exercised against the same lifecycle rules production enforces.
type testEnv struct {
	server      *httptest.Server
	adjustments *store.MemoryAdjustments
	employees   *store.MemoryEmployees
	requests    atomic.Int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	middleware.SetJWTSecret("test-secret")

	env := &testEnv{
		adjustments: store.NewMemoryAdjustments(),
		employees:   store.NewMemoryEmployees(),
	}
	activities := store.NewMemoryActivities()
	timeAccounts := timeaccount.NewService(env.employees)

	overtime := handlers.NewOvertimeHandler(env.adjustments, env.employees, activities, timeAccounts)
	timetracking := handlers.NewTimeTrackingHandler(timeAccounts, activities)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env.requests.Add(1)
			next.ServeHTTP(w, r)
		})
	})
	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware)

			r.Get("/overtime/employee/{employeeId}/adjustments", overtime.GetEmployeeAdjustments)
			r.Post("/overtime/employee/{employeeId}/adjustment", overtime.AddAdjustment)
			r.Get("/employees/{id}/name", overtime.GetEmployeeName)
			r.Post("/timetracking/employee/{employeeId}/overtime", timetracking.RecalculateOvertime)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
				r.Get("/overtime/adjustments/pending", overtime.GetPendingAdjustments)
				r.Post("/overtime/adjustments/{id}/approve", overtime.ResolveAdjustment)
				r.Delete("/overtime/adjustments/{id}", overtime.DeleteAdjustment)
			})
		})
	})

	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) seedEmployee(t *testing.T, first, last string) *models.Employee {
	t.Helper()
	emp := &models.Employee{
		FirstName:         first,
		LastName:          last,
		Department:        "IT",
		WeeklyTargetHours: 40,
	}
	require.NoError(t, e.employees.Save(context.Background(), emp))
	return emp
}

func (e *testEnv) clientFor(t *testing.T, user models.User) *Client {
	t.Helper()
	token, err := middleware.GenerateToken(&user, time.Hour)
	require.NoError(t, err)
	return New(e.server.URL, token)
}

func adminUser() models.User {
	return models.User{ID: 1, Username: "admin", FullName: "Max Admin", Role: models.RoleAdmin}
}

func managerUser() models.User {
	return models.User{ID: 2, Username: "manager", FullName: "Moritz Manager", Role: models.RoleManager}
}

func employeeUser() models.User {
	return models.User{ID: 3, Username: "worker", FullName: "Erika Muster", Role: models.RoleEmployee}
}

func viewerFor(user models.User) Viewer {
	return Viewer{ID: user.ID, Name: user.FullName, Role: user.Role}
}

func timeEntry(year int, month time.Month, day int, hours float64) models.TimeEntry {
	return models.TimeEntry{
		Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Duration: hours,
	}
}
