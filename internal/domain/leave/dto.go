package leave

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequestRequest struct {
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Portion     Portion   `json:"portion"`
	Reason      string    `json:"reason"`
}

func (r CreateRequestRequest) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("employee_id is required")
	}
	if r.LeaveTypeID == "" {
		return errors.New("leave_type_id is required")
	}
	if r.EndDate.Before(r.StartDate) {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}

type DecideRequestRequest struct {
	RequestID  string  `json:"request_id"`
	ApproverID *string `json:"approver_id,omitempty"`
}

type RequestResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	DaysTaken     decimal.Decimal `json:"days_taken"`
	Portion       Portion         `json:"portion"`
	Status        RequestStatus   `json:"status"`
	Reason        string          `json:"reason"`
	RequestedAt   time.Time       `json:"requested_at"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
}
