package response

import (
	"errors"
	"net/http"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/report"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/schedule"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Department schedule not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSegmentNotFound):
		NotFound(w, "Attendance segment not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Employee is already clocked in")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Employee is not clocked in")
	case errors.Is(err, attendance.ErrOvertimeDecisionNotAllowed):
		UnprocessableEntity(w, "Segment has no completed overtime to decide on")
	case errors.Is(err, attendance.ErrInvalidApprover):
		BadRequest(w, "A valid approver is required", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceRowNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
