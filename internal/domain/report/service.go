package report

import (
	"context"
	"time"
)

// ReportService builds monthly and range roll-ups on top of the daily
// aggregator and the entitlement calculator.
type ReportService interface {
	// EmployeeMonthlyLines evaluates every active leave type at month-end for
	// one employee, plus the days taken inside the month.
	EmployeeMonthlyLines(ctx context.Context, employeeID string, year, month int) ([]LeaveLine, error)

	// AdminMonthlyMatrix evaluates each (employee, leave type) pair at the day
	// before month-start and at month-end and differences the two.
	AdminMonthlyMatrix(ctx context.Context, year, month int) ([]LeaveTypeBalanceRow, error)

	// PayrollHoursSummary collapses the daily aggregates over [from, to]
	// (inclusive local days) into one row per employee.
	PayrollHoursSummary(ctx context.Context, from, to time.Time, filter RangeFilter) ([]PayrollRow, error)

	// OvertimeSummary reports per-employee overtime totals over [from, to].
	OvertimeSummary(ctx context.Context, from, to time.Time, filter RangeFilter) ([]OvertimeSummaryRow, error)

	// SaturdayWorkReport compares expected against worked Saturdays.
	SaturdayWorkReport(ctx context.Context, from, to time.Time, filter RangeFilter) ([]SaturdayWorkRow, error)
}
