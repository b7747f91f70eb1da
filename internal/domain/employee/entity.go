package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Employee struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	DepartmentID string
	HireDate     time.Time
	Gender       Gender
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	DepartmentName *string
}

// AccrualRecord is the legacy per-employee annual leave accrual setup.
// AccrualRatePerMonth is typically 1.25 for a 5-day week or 1.5 for a 6-day week.
type AccrualRecord struct {
	ID                  string
	EmployeeID          string
	AccrualRatePerMonth decimal.Decimal
	DaysPerWeek         int
	LastAccrualDate     time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
