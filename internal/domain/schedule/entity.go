package schedule

import "time"

// DepartmentSchedule is the per-department work-time policy. It is read-only
// for the aggregation engine; grace minutes and daily times are carried for
// the quick-entry defaults but do not affect expected-hours math.
type DepartmentSchedule struct {
	DepartmentID   string
	DepartmentName string

	RequiredHoursPerWeek float64

	DailyStart  time.Duration // offset from midnight, e.g. 8h
	DailyEnd    time.Duration // e.g. 17h
	BreakPerDay time.Duration

	WorksSaturday bool
	SaturdayHours float64
	WorksSunday   bool
	SundayHours   float64

	GraceMinutesBefore int
	GraceMinutesAfter  int
	AllowOvertime      bool
}

// ExpectedWeekdayHours is the expected working time for a regular weekday.
func (s DepartmentSchedule) ExpectedWeekdayHours() float64 {
	return s.RequiredHoursPerWeek / 5
}
