package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
)

type AccrualType string

const (
	AccrualAnnual    AccrualType = "annual"    // days per year
	AccrualCycle     AccrualType = "cycle"     // days per N-month cycle
	AccrualFixed     AccrualType = "fixed"     // one-time fixed amount
	AccrualUnlimited AccrualType = "unlimited" // no limit
	AccrualNone      AccrualType = "none"      // no accrual
)

type PoolType string

const (
	PoolOwn       PoolType = "own_pool"
	PoolOther     PoolType = "uses_other_pool"
	PoolUnlimited PoolType = "unlimited"
	PoolOneTime   PoolType = "one_time"
)

// LeaveType is the policy descriptor for one category of leave. Immutable
// per evaluation.
type LeaveType struct {
	ID          string
	Name        string
	Description *string
	ColorCode   *string
	IsActive    bool
	IsDeleted   bool

	PoolType    PoolType
	AccrualType AccrualType

	DaysPerYear         decimal.Decimal
	DaysPerCycle        *decimal.Decimal
	CycleDurationMonths *int

	AllowsCarryover  bool
	MaxCarryoverDays int
	AllowsHalfDays   bool

	IsGenderSpecific bool
	RequiredGender   *employee.Gender

	SortOrder int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BalanceRow is an explicit per-employee, per-type balance. Where present it
// overrides the type-default entitlement for the standard and parental
// policies and supplies the opening balance for annual leave.
type BalanceRow struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	BalanceStartDate time.Time
	OpeningBalance   decimal.Decimal
	CurrentBalance   decimal.Decimal

	CycleStartDate *time.Time
	CycleEndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName  *string
	LeaveTypeName *string
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusTaken     RequestStatus = "taken"
	StatusCancelled RequestStatus = "cancelled"
)

type Portion string

const (
	PortionFullDay Portion = "full_day"
	PortionHalfDay Portion = "half_day"
)

// Request is one leave request. DaysTaken is computed at creation from the
// weekend-excluding working-day count and the portion, and is immutable
// afterwards.
type Request struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	DaysTaken decimal.Decimal
	Portion   Portion

	Status RequestStatus
	Reason string

	RequestedAt time.Time
	ApprovedAt  *time.Time
	ApprovedBy  *string

	AttachmentFileName *string

	CreatedAt time.Time

	// DTO
	EmployeeName  *string
	LeaveTypeName *string
}

// BalanceSummary is the as-at-date snapshot for one employee and leave type.
type BalanceSummary struct {
	LeaveTypeName     string          `json:"leave_type_name"`
	TotalEntitlement  decimal.Decimal `json:"total_entitlement"`
	Taken             decimal.Decimal `json:"taken"`
	Remaining         decimal.Decimal `json:"remaining"`
	OpeningFromDate   *time.Time      `json:"opening_from_date,omitempty"`
	AccruedSinceStart decimal.Decimal `json:"accrued_since_start"`
}
