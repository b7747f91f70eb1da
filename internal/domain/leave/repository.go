package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveTypeRepository - leave type policy descriptors.
type LeaveTypeRepository interface {
	// GetByID retrieves a leave type, excluding soft-deleted rows. Returns
	// ErrLeaveTypeNotFound when missing or deleted.
	GetByID(ctx context.Context, id string) (LeaveType, error)

	// ListActive retrieves non-deleted leave types ordered by name.
	ListActive(ctx context.Context) ([]LeaveType, error)
}

// BalanceRepository - explicit per-employee balance rows.
type BalanceRepository interface {
	// GetByEmployeeAndType returns the balance row for (employee, type), or
	// nil when none exists.
	GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (*BalanceRow, error)

	Update(ctx context.Context, row BalanceRow) error
}

// RequestRepository - leave requests and the approved-day sums the
// entitlement calculator runs on. All sums count Approved requests only,
// keyed by request start date.
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)

	// GetByID returns ErrLeaveRequestNotFound when missing.
	GetByID(ctx context.Context, id string) (Request, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListPending(ctx context.Context) ([]Request, error)

	// UpdateStatus transitions a Pending request to Approved or Rejected.
	Update(ctx context.Context, request Request) error

	// SumApprovedDays sums DaysTaken over Approved requests with
	// from ≤ StartDate ≤ to. A nil from leaves the window open at the start.
	SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, from *time.Time, to time.Time) (decimal.Decimal, error)

	// FirstApprovedFrom returns the earliest Approved request with
	// from ≤ StartDate ≤ to, or nil when there is none.
	FirstApprovedFrom(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (*Request, error)

	// ListApprovedStartingIn returns Approved requests with StartDate in
	// [from, to), optionally filtered by employee.
	ListApprovedStartingIn(ctx context.Context, from, to time.Time, employeeID *string) ([]Request, error)
}
