package employee

import (
	"context"
)

// EmployeeRepository defines data access for employees.
type EmployeeRepository interface {
	// GetByID retrieves an employee by id. Returns ErrEmployeeNotFound when missing.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive retrieves all active employees ordered by name.
	ListActive(ctx context.Context) ([]Employee, error)
}

// AccrualRepository defines data access for the legacy annual accrual records.
type AccrualRepository interface {
	// GetByEmployeeID returns the accrual record for an employee, or nil when
	// the employee has no record yet.
	GetByEmployeeID(ctx context.Context, employeeID string) (*AccrualRecord, error)

	Upsert(ctx context.Context, record AccrualRecord) (AccrualRecord, error)
}
