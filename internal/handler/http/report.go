package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/report"
	"github.com/crestline-hr/timekeeping-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	EmployeeMonthlyLines(w http.ResponseWriter, r *http.Request)
	AdminMonthlyMatrix(w http.ResponseWriter, r *http.Request)
	PayrollHoursSummary(w http.ResponseWriter, r *http.Request)
	OvertimeSummary(w http.ResponseWriter, r *http.Request)
	SaturdayWorkReport(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// EmployeeMonthlyLines implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeMonthlyLines(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	year, month, ok := parsePeriodParams(w, r)
	if !ok {
		return
	}

	lines, err := h.reportService.EmployeeMonthlyLines(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, lines)
}

// AdminMonthlyMatrix implements ReportHandler.
func (h *ReportHandlerImpl) AdminMonthlyMatrix(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriodParams(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.AdminMonthlyMatrix(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// PayrollHoursSummary implements ReportHandler.
func (h *ReportHandlerImpl) PayrollHoursSummary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRangeParams(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.PayrollHoursSummary(r.Context(), from, to, rangeFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// OvertimeSummary implements ReportHandler.
func (h *ReportHandlerImpl) OvertimeSummary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRangeParams(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.OvertimeSummary(r.Context(), from, to, rangeFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// SaturdayWorkReport implements ReportHandler.
func (h *ReportHandlerImpl) SaturdayWorkReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRangeParams(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.SaturdayWorkReport(r.Context(), from, to, rangeFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

func rangeFilterFromQuery(r *http.Request) report.RangeFilter {
	var filter report.RangeFilter
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	return filter
}

func parsePeriodParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year is required and must be a number", nil)
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month is required and must be a number", nil)
		return 0, 0, false
	}
	return year, month, true
}
