package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	"github.com/crestline-hr/timekeeping-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)

	GetDaily(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
	ListRange(w http.ResponseWriter, r *http.Request)

	DecideOvertime(w http.ResponseWriter, r *http.Request)
	UpdateTimes(w http.ResponseWriter, r *http.Request)
	SaveQuickEntry(w http.ResponseWriter, r *http.Request)
	ClearDay(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	seg, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", seg)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.attendanceService.ClockOut(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", nil)
}

// Status implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	status, err := h.attendanceService.Status(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetDaily implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	day, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	agg, err := h.attendanceService.ComputeDaily(r.Context(), employeeID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, agg)
}

// ListDay implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	segments, err := h.attendanceService.ListDay(r.Context(), day, dayFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, segments)
}

// ListRange implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListRange(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRangeParams(w, r)
	if !ok {
		return
	}

	segments, err := h.attendanceService.ListRange(r.Context(), from, to, dayFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, segments)
}

// DecideOvertime implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DecideOvertime(w http.ResponseWriter, r *http.Request) {
	var decision attendance.OvertimeDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		slog.Error("DecideOvertime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	decision.SegmentID = chi.URLParam(r, "id")

	if err := h.attendanceService.DecideOvertime(r.Context(), decision); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime decision recorded", nil)
}

// UpdateTimes implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateTimes(w http.ResponseWriter, r *http.Request) {
	var req attendance.EditTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTimes decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SegmentID = chi.URLParam(r, "id")

	if err := h.attendanceService.UpdateTimes(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Segment times updated", nil)
}

// SaveQuickEntry implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SaveQuickEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.QuickEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveQuickEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.attendanceService.SaveQuickEntry(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance entry saved", nil)
}

// ClearDay implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClearDay(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	day, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	if err := h.attendanceService.ClearDay(r.Context(), employeeID, day); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance cleared for day", nil)
}

// Delete implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Segment ID is required", nil)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Segment deleted", nil)
}

func dayFilterFromQuery(r *http.Request) attendance.DayFilter {
	var filter attendance.DayFilter
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	return filter
}

func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		response.BadRequest(w, name+" is required (YYYY-MM-DD)", nil)
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(w, "Invalid "+name+" format, expected YYYY-MM-DD", nil)
		return time.Time{}, false
	}
	return day, true
}

func parseRangeParams(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, ok := parseDateParam(w, r, "from")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := parseDateParam(w, r, "to")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		response.BadRequest(w, "to must not be before from", nil)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
