package attendance

import (
	"math"
	"time"
)

type WorkCategory string

const (
	WorkCategoryNormal    WorkCategory = "normal"
	WorkCategoryDriver    WorkCategory = "driver"
	WorkCategoryBreakdown WorkCategory = "breakdown"
)

type OvertimeStatus string

const (
	// OvertimeNone and OvertimePending are computed during aggregation and are
	// never set directly by an operator decision.
	OvertimeNone     OvertimeStatus = "none"
	OvertimePending  OvertimeStatus = "pending"
	OvertimeApproved OvertimeStatus = "approved"
	OvertimeDenied   OvertimeStatus = "denied"
)

// Segment is one clock-in/clock-out pair for an employee. Clock times are
// stored in UTC; the working day is derived from the clock-in in local time.
type Segment struct {
	ID                  string
	EmployeeID          string
	ClockedByEmployeeID string

	ClockIn  time.Time
	ClockOut *time.Time

	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64

	SiteID       *string
	WorkCategory WorkCategory

	// Derived fields, recomputed on every aggregation and written back as a
	// cache. HoursWorked is per segment; the overtime figures are the whole
	// day's and are repeated on each of that day's segments.
	HoursWorked                *float64
	OvertimeHours              *float64
	WeekdayOvertimeHours       *float64
	SundayHolidayOvertimeHours *float64

	// Overtime decision workflow
	OvertimeStatus       OvertimeStatus
	OvertimeLocation     *string
	OvertimeNote         *string
	OvertimeApprovedByID *string
	OvertimeDecisionTime *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName         *string
	DepartmentID         *string
	DepartmentName       *string
	SiteName             *string
	OvertimeApprovedName *string
}

// WorkedHours returns the segment duration in hours rounded to two decimals,
// or 0 for an open segment.
func (s Segment) WorkedHours() float64 {
	if s.ClockOut == nil {
		return 0
	}
	h := s.ClockOut.Sub(s.ClockIn).Hours()
	if h < 0 {
		h = 0
	}
	return round2(h)
}

// DayType classifies a working day for expected-hours lookup.
type DayType int

const (
	Weekday DayType = iota
	Saturday
	SundayOrHoliday
)

// DailyAggregate is the derived per-employee per-day view. It is computed
// fresh on every query and never persisted as its own record.
type DailyAggregate struct {
	EmployeeID string
	Day        time.Time // midnight, local

	DayType       DayType
	ExpectedHours float64
	TotalHours    float64

	OvertimeHours              float64
	WeekdayOvertimeHours       float64
	SundayHolidayOvertimeHours float64
	OvertimeStatus             OvertimeStatus

	// Informational sums of segment worked hours bucketed by work category.
	NormalHours    float64
	DriverHours    float64
	BreakdownHours float64

	Segments []Segment
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
