package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveLine is one row of the employee monthly view: the calculator's
// month-end snapshot plus the days taken inside the month.
type LeaveLine struct {
	LeaveTypeID       string          `json:"leave_type_id"`
	LeaveTypeName     string          `json:"leave_type_name"`
	TotalEntitlement  decimal.Decimal `json:"total_entitlement"`
	TakenToDate       decimal.Decimal `json:"taken_to_date"`
	Remaining         decimal.Decimal `json:"remaining"`
	TakenInMonth      decimal.Decimal `json:"taken_in_month"`
	EmployeeHireDate  *time.Time      `json:"employee_hire_date,omitempty"`
	OpeningFromDate   *time.Time      `json:"opening_from_date,omitempty"`
	AccruedSinceStart decimal.Decimal `json:"accrued_since_start"`
}

// LeaveTypeBalanceRow is one cell of the admin month-by-type matrix.
// AccruedInMonth = (closing remaining + taken in month) − opening remaining;
// an algebraic identity, not an independently verified accrual. It can
// mislead for the parental policy, whose remaining is not a running balance.
type LeaveTypeBalanceRow struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	DepartmentName string          `json:"department_name"`
	LeaveTypeID    string          `json:"leave_type_id"`
	LeaveTypeName  string          `json:"leave_type_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	AccruedInMonth decimal.Decimal `json:"accrued_in_month"`
	TakenInMonth   decimal.Decimal `json:"taken_in_month"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// PayrollRow is the per-employee hours summary over a payroll date range.
// Overtime buckets count only days whose overtime was approved.
type PayrollRow struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`

	NormalHours             float64 `json:"normal_hours"`
	OvertimeWeekdayApproved float64 `json:"overtime_weekday_approved"`
	OvertimeSundayApproved  float64 `json:"overtime_sunday_approved"`
	DriverHours             float64 `json:"driver_hours"`
}

// OvertimeSummaryRow is the per-employee overtime breakdown over a range.
type OvertimeSummaryRow struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`

	NormalHours                float64 `json:"normal_hours"`
	WeekdayOvertimeHours       float64 `json:"weekday_overtime_hours"`
	SundayHolidayOvertimeHours float64 `json:"sunday_holiday_overtime_hours"`
	ApprovedOvertimeHours      float64 `json:"approved_overtime_hours"`
	UnapprovedOvertimeHours    float64 `json:"unapproved_overtime_hours"`
}

// SaturdayWorkRow compares expected against worked Saturdays per employee.
type SaturdayWorkRow struct {
	EmployeeID        string `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	DepartmentName    string `json:"department_name"`
	ExpectedSaturdays int    `json:"expected_saturdays"`
	WorkedSaturdays   int    `json:"worked_saturdays"`
	MissedSaturdays   int    `json:"missed_saturdays"`
}

// RangeFilter narrows the payroll and overtime summaries.
type RangeFilter struct {
	EmployeeID   *string
	DepartmentID *string
}
