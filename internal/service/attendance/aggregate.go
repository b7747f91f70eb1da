package attendance

import (
	"math"
	"sort"
	"time"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/schedule"
)

// BuildDailyAggregate turns one employee's segments for one local day into
// the day's aggregate. Pure: it never touches storage, and identical inputs
// always produce identical output, so recomputation (and the caller's
// write-back of the derived fields) is idempotent.
//
// The day type comes from the first segment's local clock-in weekday. When
// overtime exists on a Sunday or public holiday the whole amount lands in
// the Sunday/holiday bucket, otherwise in the weekday bucket; there is no
// split within a single day.
func BuildDailyAggregate(
	segments []attendance.Segment,
	sched schedule.DepartmentSchedule,
	holidays attendance.HolidayChecker,
	loc *time.Location,
) attendance.DailyAggregate {
	if len(segments) == 0 {
		return attendance.DailyAggregate{}
	}

	ordered := make([]attendance.Segment, len(segments))
	copy(ordered, segments)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ClockIn.Before(ordered[j].ClockIn)
	})

	firstLocal := ordered[0].ClockIn.In(loc)
	day := time.Date(firstLocal.Year(), firstLocal.Month(), firstLocal.Day(), 0, 0, 0, 0, loc)

	dayType := attendance.Weekday
	switch firstLocal.Weekday() {
	case time.Sunday:
		dayType = attendance.SundayOrHoliday
	case time.Saturday:
		dayType = attendance.Saturday
	}
	if holidays.IsPublicHoliday(day) {
		dayType = attendance.SundayOrHoliday
	}

	var expected float64
	switch dayType {
	case attendance.SundayOrHoliday:
		if sched.WorksSunday {
			expected = sched.SundayHours
		}
	case attendance.Saturday:
		if sched.WorksSaturday {
			expected = sched.SaturdayHours
		}
	default:
		expected = sched.ExpectedWeekdayHours()
	}

	var total float64
	var anyApproved, anyDenied bool
	var normal, driver, breakdown float64

	for i := range ordered {
		worked := ordered[i].WorkedHours()
		ordered[i].HoursWorked = ptr(worked)
		total += worked

		switch ordered[i].OvertimeStatus {
		case attendance.OvertimeApproved:
			anyApproved = true
		case attendance.OvertimeDenied:
			anyDenied = true
		}

		switch ordered[i].WorkCategory {
		case attendance.WorkCategoryDriver:
			driver += worked
		case attendance.WorkCategoryBreakdown:
			breakdown += worked
		default:
			normal += worked
		}
	}

	rawOvertime := math.Max(0, total-expected)

	status := attendance.OvertimeNone
	switch {
	case rawOvertime <= 0:
		status = attendance.OvertimeNone
	case anyApproved: // approved wins over denied
		status = attendance.OvertimeApproved
	case anyDenied:
		status = attendance.OvertimeDenied
	default:
		status = attendance.OvertimePending
	}

	var weekdayOT, sundayOT float64
	if rawOvertime > 0 {
		if dayType == attendance.SundayOrHoliday {
			sundayOT = rawOvertime
		} else {
			weekdayOT = rawOvertime
		}
	}

	agg := attendance.DailyAggregate{
		EmployeeID:                 ordered[0].EmployeeID,
		Day:                        day,
		DayType:                    dayType,
		ExpectedHours:              round2(expected),
		TotalHours:                 round2(total),
		OvertimeHours:              round2(rawOvertime),
		WeekdayOvertimeHours:       round2(weekdayOT),
		SundayHolidayOvertimeHours: round2(sundayOT),
		OvertimeStatus:             status,
		NormalHours:                round2(normal),
		DriverHours:                round2(driver),
		BreakdownHours:             round2(breakdown),
	}

	// Stamp the day-level figures onto each segment, the shape the caller
	// persists as a cache.
	for i := range ordered {
		ordered[i].OvertimeHours = ptr(agg.OvertimeHours)
		ordered[i].WeekdayOvertimeHours = ptr(agg.WeekdayOvertimeHours)
		ordered[i].SundayHolidayOvertimeHours = ptr(agg.SundayHolidayOvertimeHours)
		ordered[i].OvertimeStatus = agg.OvertimeStatus
	}
	agg.Segments = ordered

	return agg
}

// groupByEmployeeDay splits a mixed range listing into per-employee,
// per-local-day buckets, keyed in clock-in order.
func groupByEmployeeDay(segments []attendance.Segment, loc *time.Location) map[dayKey][]attendance.Segment {
	groups := make(map[dayKey][]attendance.Segment)
	for _, s := range segments {
		local := s.ClockIn.In(loc)
		key := dayKey{
			employeeID: s.EmployeeID,
			day:        time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
		}
		groups[key] = append(groups[key], s)
	}
	return groups
}

type dayKey struct {
	employeeID string
	day        time.Time
}

func ptr[T any](v T) *T { return &v }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
