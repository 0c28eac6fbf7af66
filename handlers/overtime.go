package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"peopleflow/balance"
	"peopleflow/middleware"
	"peopleflow/models"
	"peopleflow/store"
	"peopleflow/timeaccount"
)

// OvertimeHandler serves the adjustment lifecycle and reconciliation API.
// The store is authoritative: role checks and the pending-only transition
// rule are enforced here even though the UI also hides the controls.
type OvertimeHandler struct {
	adjustments store.Adjustments
	employees   store.Employees
	activities  store.Activities
	timeaccount *timeaccount.Service
}

func NewOvertimeHandler(adjustments store.Adjustments, employees store.Employees, activities store.Activities, ta *timeaccount.Service) *OvertimeHandler {
	return &OvertimeHandler{
		adjustments: adjustments,
		employees:   employees,
		activities:  activities,
		timeaccount: ta,
	}
}

// GetEmployeeAdjustments returns every adjustment for one employee, newest
// first, regardless of status. The caller reconciles the balance from it.
func (h *OvertimeHandler) GetEmployeeAdjustments(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	adjustments, err := h.adjustments.ByEmployee(r.Context(), employeeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Fehler beim Abrufen der Anpassungen")
		return
	}
	if adjustments == nil {
		adjustments = []models.OvertimeAdjustment{}
	}

	respondData(w, adjustments)
}

// AddAdjustment creates a pending adjustment. Hours must parse as a finite
// number and the reason must be non-blank; both are also validated in the
// client before any request is sent.
func (h *OvertimeHandler) AddAdjustment(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	user := middleware.GetUserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Ungültige Formulardaten")
		return
	}

	if !models.ValidReason(r.FormValue("reason")) {
		respondError(w, http.StatusBadRequest, "Begründung ist erforderlich")
		return
	}

	hours, err := models.ParseHours(r.FormValue("hours"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Ungültige Stundenangabe")
		return
	}

	employee, err := h.employees.ByID(r.Context(), employeeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Mitarbeiter nicht gefunden")
		return
	}

	adjType := models.AdjustmentType(r.FormValue("type"))
	if adjType == "" {
		adjType = models.AdjustmentManual
	}

	adjustment := &models.OvertimeAdjustment{
		EmployeeID:   employeeID,
		Type:         adjType,
		Hours:        hours,
		Reason:       r.FormValue("reason"),
		Description:  r.FormValue("description"),
		AdjustedBy:   user.ID,
		AdjusterName: user.DisplayName(),
	}

	if err := h.adjustments.Create(r.Context(), adjustment); err != nil {
		respondError(w, http.StatusInternalServerError, "Fehler beim Speichern der Anpassung")
		return
	}

	h.logActivity(r, models.ActivityAdjustmentCreated, employee,
		fmt.Sprintf("Überstunden-Anpassung eingereicht: %s", balance.FormatHours(adjustment.Hours)))

	respondMessageData(w, "Überstunden-Anpassung wurde eingereicht und wartet auf Genehmigung", adjustment)
}

// pendingRow is a pending adjustment enriched with the employee's display
// name. Lookup failures degrade to a placeholder, never to a dropped row.
type pendingRow struct {
	models.OvertimeAdjustment
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
}

func (h *OvertimeHandler) GetPendingAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := h.adjustments.Pending(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Fehler beim Abrufen der ausstehenden Anpassungen")
		return
	}

	rows := make([]pendingRow, 0, len(adjustments))
	for _, adj := range adjustments {
		row := pendingRow{OvertimeAdjustment: adj, EmployeeName: "Unbekannter Mitarbeiter"}
		if employee, err := h.employees.ByID(r.Context(), adj.EmployeeID); err == nil {
			row.EmployeeName = employee.DisplayName()
			row.Department = employee.Department
		}
		rows = append(rows, row)
	}

	respondData(w, rows)
}

// ResolveAdjustment approves or rejects a pending adjustment, depending on
// the submitted action. A record that is no longer pending stays untouched.
func (h *OvertimeHandler) ResolveAdjustment(w http.ResponseWriter, r *http.Request) {
	adjustmentID := chi.URLParam(r, "id")
	user := middleware.GetUserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Ungültige Formulardaten")
		return
	}

	status := models.StatusApproved
	if r.FormValue("action") == "reject" {
		status = models.StatusRejected
	}

	adjustment, err := h.adjustments.Resolve(r.Context(), adjustmentID, status, user.ID, user.DisplayName())
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Anpassung nicht gefunden")
		return
	case errors.Is(err, store.ErrAlreadyResolved):
		respondError(w, http.StatusConflict, "Anpassung wurde bereits bearbeitet")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Fehler beim Aktualisieren des Status")
		return
	}

	activityType := models.ActivityAdjustmentApproved
	actionText := "genehmigt"
	message := "Anpassung wurde genehmigt"
	if status == models.StatusRejected {
		activityType = models.ActivityAdjustmentRejected
		actionText = "abgelehnt"
		message = "Anpassung wurde abgelehnt"
	}

	if employee, err := h.employees.ByID(r.Context(), adjustment.EmployeeID); err == nil {
		h.logActivity(r, activityType, employee,
			fmt.Sprintf("Überstunden-Anpassung %s: %s", actionText, balance.FormatHours(adjustment.Hours)))
	}

	respondMessage(w, message)
}

// DeleteAdjustment removes an adjustment in any status. Removing an
// approved one changes the final balance, which the client picks up through
// its re-fetch.
func (h *OvertimeHandler) DeleteAdjustment(w http.ResponseWriter, r *http.Request) {
	adjustmentID := chi.URLParam(r, "id")

	adjustment, err := h.adjustments.Delete(r.Context(), adjustmentID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Anpassung nicht gefunden")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Fehler beim Löschen der Anpassung")
		return
	}

	if employee, err := h.employees.ByID(r.Context(), adjustment.EmployeeID); err == nil {
		h.logActivity(r, models.ActivityAdjustmentDeleted, employee,
			fmt.Sprintf("Überstunden-Anpassung gelöscht: %s (%s)", balance.FormatHours(adjustment.Hours), adjustment.Reason))
	}

	respondMessage(w, "Anpassung wurde erfolgreich gelöscht")
}

// GetEmployeeName is the best-effort display name lookup the pending queue
// uses to label rows.
func (h *OvertimeHandler) GetEmployeeName(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	employee, err := h.employees.ByID(r.Context(), employeeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Mitarbeiter nicht gefunden")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"name":    employee.DisplayName(),
	})
}

// employeeOvertimeDetails is the full breakdown for the employee page:
// base balance, adjustments grouped by status, and the reconciled total.
type employeeOvertimeDetails struct {
	EmployeeID       string                                 `json:"employeeId"`
	EmployeeName     string                                 `json:"employeeName"`
	WeeklyTarget     float64                                `json:"weeklyTargetHours"`
	BaseBalance      float64                                `json:"baseBalance"`
	AdjustmentsTotal float64                                `json:"adjustmentsTotal"`
	FinalBalance     float64                                `json:"finalBalance"`
	FinalDisplay     string                                 `json:"finalDisplay"`
	Adjustments      map[string][]models.OvertimeAdjustment `json:"adjustments"`
	WeeklyEntries    []timeaccount.WeeklySummary            `json:"weeklyEntries"`
}

func (h *OvertimeHandler) GetEmployeeOvertimeDetails(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	employee, err := h.employees.ByID(r.Context(), employeeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Mitarbeiter nicht gefunden")
		return
	}

	adjustments, err := h.adjustments.ByEmployee(r.Context(), employeeID)
	if err != nil {
		adjustments = nil
	}

	grouped := map[string][]models.OvertimeAdjustment{
		"approved": {},
		"pending":  {},
		"rejected": {},
	}
	for _, adj := range adjustments {
		grouped[string(adj.Status)] = append(grouped[string(adj.Status)], adj)
	}

	baseBalance, weekly := timeaccount.CalculateBalance(employee)
	summary := balance.Reconcile(baseBalance, adjustments)

	respondData(w, employeeOvertimeDetails{
		EmployeeID:       employee.ID,
		EmployeeName:     employee.DisplayName(),
		WeeklyTarget:     employee.WeeklyTargetHours,
		BaseBalance:      summary.CalculatedBalance,
		AdjustmentsTotal: summary.AdjustmentsTotal,
		FinalBalance:     summary.FinalBalance,
		FinalDisplay:     balance.FormatHours(summary.FinalBalance),
		Adjustments:      grouped,
		WeeklyEntries:    weekly,
	})
}

// ExportCSV writes the reconciled balance of every employee as CSV.
func (h *OvertimeHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.All(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Fehler beim Abrufen der Mitarbeiter")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=ueberstunden.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Mitarbeiter", "Abteilung", "Wochenstunden (Soll)", "Basis-Saldo", "Anpassungen", "Finales Saldo"})

	for _, emp := range employees {
		adjustments, err := h.adjustments.ByEmployee(r.Context(), emp.ID)
		if err != nil {
			continue
		}
		baseBalance, _ := timeaccount.CalculateBalance(&emp)
		summary := balance.Reconcile(baseBalance, adjustments)

		writer.Write([]string{
			emp.DisplayName(),
			emp.Department,
			fmt.Sprintf("%.1f", emp.WeeklyTargetHours),
			fmt.Sprintf("%.2f", summary.CalculatedBalance),
			fmt.Sprintf("%.2f", summary.AdjustmentsTotal),
			fmt.Sprintf("%.2f", summary.FinalBalance),
		})
	}
}

// GetRecentActivities returns the latest audit trail entries.
func (h *OvertimeHandler) GetRecentActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.Recent(r.Context(), 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Fehler beim Abrufen der Aktivitäten")
		return
	}
	respondData(w, activities)
}

func (h *OvertimeHandler) logActivity(r *http.Request, activityType models.ActivityType, employee *models.Employee, message string) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		return
	}
	// Audit logging must never fail the request.
	_ = h.activities.Log(r.Context(), models.Activity{
		Type:         activityType,
		UserID:       user.ID,
		UserName:     user.DisplayName(),
		EmployeeID:   employee.ID,
		EmployeeName: employee.DisplayName(),
		Message:      message,
	})
}
