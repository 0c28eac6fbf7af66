package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"peopleflow/middleware"
	"peopleflow/models"
	"peopleflow/store"
	"peopleflow/timeaccount"
)

// TimeTrackingHandler fronts the time account calculator. The synced time
// entries themselves come from the integrations and are read-only here.
type TimeTrackingHandler struct {
	timeaccount *timeaccount.Service
	activities  store.Activities
}

func NewTimeTrackingHandler(ta *timeaccount.Service, activities store.Activities) *TimeTrackingHandler {
	return &TimeTrackingHandler{timeaccount: ta, activities: activities}
}

// RecalculateOvertime recomputes the base overtime balance for one employee
// from their recorded time entries.
func (h *TimeTrackingHandler) RecalculateOvertime(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	employee, err := h.timeaccount.Recalculate(r.Context(), employeeID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Mitarbeiter nicht gefunden")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Fehler bei der Überstunden-Berechnung")
		return
	}

	if user := middleware.GetUserFromContext(r.Context()); user != nil {
		_ = h.activities.Log(r.Context(), models.Activity{
			Type:         models.ActivityOvertimeRecalc,
			UserID:       user.ID,
			UserName:     user.DisplayName(),
			EmployeeID:   employee.ID,
			EmployeeName: employee.DisplayName(),
			Message:      "Überstunden neu berechnet",
		})
	}

	respondData(w, map[string]any{
		"overtimeBalance": employee.OvertimeBalance,
	})
}

// RecalculateAllOvertime refreshes the base balance of every employee.
func (h *TimeTrackingHandler) RecalculateAllOvertime(w http.ResponseWriter, r *http.Request) {
	if err := h.timeaccount.RecalculateAll(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "Fehler bei der Überstunden-Berechnung")
		return
	}
	respondMessage(w, "Überstunden für alle Mitarbeiter wurden erfolgreich neu berechnet")
}
