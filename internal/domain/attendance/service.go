package attendance

import (
	"context"
	"time"
)

// AttendanceService exposes the daily aggregation engine and the overtime
// decision workflow.
type AttendanceService interface {
	// ClockIn opens a new segment for an employee. The at-most-one-open-segment
	// invariant is enforced at the repository write boundary.
	ClockIn(ctx context.Context, req ClockRequest) (Segment, error)

	// ClockOut closes the employee's open segment.
	ClockOut(ctx context.Context, req ClockRequest) error

	// Status reports whether an employee is clocked in, falling back to the
	// last closed segment.
	Status(ctx context.Context, employeeID string) (ClockStatus, error)

	// ComputeDaily aggregates one employee's segments for one local day.
	// Recomputation is idempotent; derived figures are written back onto the
	// day's segments as a cache.
	ComputeDaily(ctx context.Context, employeeID string, day time.Time) (DailyAggregate, error)

	// ListDay returns the per-segment view for one local day with day-level
	// figures attached, for all employees matching the filter.
	ListDay(ctx context.Context, day time.Time, filter DayFilter) ([]SegmentResponse, error)

	// ListRange returns segments for [fromDay, toDay] inclusive local days
	// with their day-level figures computed, without write-back.
	ListRange(ctx context.Context, fromDay, toDay time.Time, filter DayFilter) ([]Segment, error)

	// DecideOvertime applies an approve/deny/reset decision to one segment.
	DecideOvertime(ctx context.Context, decision OvertimeDecision) error

	// UpdateTimes is an admin correction of a segment's raw times; it resets
	// the overtime fields so the day is re-evaluated on the next aggregation.
	UpdateTimes(ctx context.Context, req EditTimesRequest) error

	// SaveQuickEntry backfills clock times for a past day.
	SaveQuickEntry(ctx context.Context, req QuickEntryRequest) error

	// ClearDay removes all of an employee's segments for a local day.
	ClearDay(ctx context.Context, employeeID string, day time.Time) error

	Delete(ctx context.Context, id string) error
}

// HolidayChecker reports whether a local day is a public holiday. The engine
// ships with a stub that always reports false; detection is an injectable
// capability.
type HolidayChecker interface {
	IsPublicHoliday(day time.Time) bool
}

// NoHolidays is the default HolidayChecker.
type NoHolidays struct{}

func (NoHolidays) IsPublicHoliday(time.Time) bool { return false }
