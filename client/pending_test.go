package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peopleflow/models"
)

func submitFor(t *testing.T, env *testEnv, employeeID string, hours, reason string) string {
	t.Helper()
	api := env.clientFor(t, employeeUser())
	c := NewController(api, viewerFor(employeeUser()), employeeID, 0)
	require.NoError(t, c.Submit(context.Background(), AdjustmentForm{Hours: hours, Reason: reason}))
	return c.Adjustments()[0].ID
}

func TestPendingQueue_HiddenForEmployees(t *testing.T) {
	env := newTestEnv(t)
	emp := env.seedEmployee(t, "Anna", "Schmidt")
	submitFor(t, env, emp.ID, "2", "Korrektur")

	api := env.clientFor(t, employeeUser())
	q := NewPendingQueue(api, viewerFor(employeeUser()))

	before := env.requests.Load()
	require.NoError(t, q.Refresh(context.Background()))

	view := q.View()
	assert.False(t, view.Visible)
	assert.Empty(t, view.Rows)
	// No fetch at all for non-privileged roles.
	assert.Equal(t, before, env.requests.Load())
}

func TestPendingQueue_ListsAcrossEmployees(t *testing.T) {
	env := newTestEnv(t)
	anna := env.seedEmployee(t, "Anna", "Schmidt")
	ben := env.seedEmployee(t, "Ben", "Weber")
	submitFor(t, env, anna.ID, "2.0", "Inventur")
	submitFor(t, env, ben.ID, "-1.5", "Fehlbuchung")

	api := env.clientFor(t, managerUser())
	q := NewPendingQueue(api, viewerFor(managerUser()))
	require.NoError(t, q.Refresh(context.Background()))

	view := q.View()
	assert.True(t, view.Visible)
	assert.NoError(t, view.Err)
	require.Equal(t, 2, view.Count)

	names := map[string]string{}
	for _, row := range view.Rows {
		names[row.EmployeeName] = row.HoursDisplay
	}
	assert.Equal(t, "+2.0 Std", names["Anna Schmidt"])
	assert.Equal(t, "-1.5 Std", names["Ben Weber"])
}

func TestPendingQueue_ApproveRemovesRow(t *testing.T) {
	env := newTestEnv(t)
	emp := env.seedEmployee(t, "Anna", "Schmidt")
	first := submitFor(t, env, emp.ID, "2", "Inventur")
	submitFor(t, env, emp.ID, "1", "Korrektur")

	api := env.clientFor(t, adminUser())
	q := NewPendingQueue(api, viewerFor(adminUser()))
	require.NoError(t, q.Refresh(context.Background()))
	require.Equal(t, 2, q.View().Count)

	require.NoError(t, q.Approve(context.Background(), first))

	view := q.View()
	assert.Equal(t, 1, view.Count)
	for _, row := range view.Rows {
		assert.NotEqual(t, first, row.Adjustment.ID)
	}
}

func TestPendingQueue_AlreadyResolvedKeepsRow(t *testing.T) {
	env := newTestEnv(t)
	emp := env.seedEmployee(t, "Anna", "Schmidt")
	id := submitFor(t, env, emp.ID, "2", "Inventur")

	admin := env.clientFor(t, adminUser())
	manager := env.clientFor(t, managerUser())

	adminQueue := NewPendingQueue(admin, viewerFor(adminUser()))
	managerQueue := NewPendingQueue(manager, viewerFor(managerUser()))
	require.NoError(t, adminQueue.Refresh(context.Background()))
	require.NoError(t, managerQueue.Refresh(context.Background()))

	require.NoError(t, adminQueue.Approve(context.Background(), id))

	// The manager still shows the row and their decision now fails; the row
	// stays until their next refresh reconciles.
	var apiErr *APIError
	err := managerQueue.Reject(context.Background(), id)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1, managerQueue.View().Count)

	require.NoError(t, managerQueue.Refresh(context.Background()))
	assert.Equal(t, 0, managerQueue.View().Count)
}

func TestPendingQueue_NameLookupFailureUsesPlaceholder(t *testing.T) {
	env := newTestEnv(t)

	// An adjustment whose employee record no longer exists.
	require.NoError(t, env.adjustments.Create(context.Background(), &models.OvertimeAdjustment{
		EmployeeID: "ghost",
		Hours:      2,
		Reason:     "Inventur",
	}))

	api := env.clientFor(t, adminUser())
	q := NewPendingQueue(api, viewerFor(adminUser()))
	require.NoError(t, q.Refresh(context.Background()))

	view := q.View()
	require.Equal(t, 1, view.Count)
	// Degrades to the backend's placeholder rather than dropping the row.
	assert.Equal(t, "Unbekannter Mitarbeiter", view.Rows[0].EmployeeName)
}

func TestPendingQueue_FetchFailureIsExplicit(t *testing.T) {
	env := newTestEnv(t)
	api := env.clientFor(t, adminUser())
	q := NewPendingQueue(api, viewerFor(adminUser()))

	env.server.Close()

	err := q.Refresh(context.Background())
	require.Error(t, err)

	view := q.View()
	assert.True(t, view.Visible)
	assert.Error(t, view.Err, "failed load must be distinguishable from an empty queue")
	assert.Empty(t, view.Rows)
}
