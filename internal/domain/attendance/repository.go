package attendance

import (
	"context"
	"time"
)

// SegmentRepository defines data access for attendance segments. The
// "at most one open segment per employee" invariant is enforced here, by a
// transactional check-then-insert in CreateIfNotClockedIn, never by the
// aggregation engine.
type SegmentRepository interface {
	// GetByID retrieves a segment by id. Returns ErrSegmentNotFound when missing.
	GetByID(ctx context.Context, id string) (Segment, error)

	// GetOpenSegment returns the employee's open segment (no clock-out), or
	// nil when the employee is not clocked in.
	GetOpenSegment(ctx context.Context, employeeID string) (*Segment, error)

	// GetLastSegment returns the employee's most recent segment by clock-in
	// time, or nil when the employee has none.
	GetLastSegment(ctx context.Context, employeeID string) (*Segment, error)

	// CreateIfNotClockedIn atomically inserts a new open segment unless the
	// employee already has one. Returns ErrAlreadyClockedIn in that case.
	CreateIfNotClockedIn(ctx context.Context, segment Segment) (Segment, error)

	// CloseOpenSegment stamps the clock-out on the employee's open segment.
	// Returns ErrNotClockedIn when there is none.
	CloseOpenSegment(ctx context.Context, employeeID string, clockOut time.Time, lat, lng *float64, clockedBy string) error

	// ListByRange returns segments whose clock-in falls in [fromUTC, toUTC),
	// joined with employee and site names, ordered by clock-in time.
	ListByRange(ctx context.Context, fromUTC, toUTC time.Time, filter DayFilter) ([]Segment, error)

	// Update replaces a segment's mutable fields (times, category, overtime
	// decision fields).
	Update(ctx context.Context, segment Segment) error

	// PersistDerived writes the computed per-segment and per-day figures back
	// onto the given segments. Pure cache: the values are recomputable.
	PersistDerived(ctx context.Context, segments []Segment) error

	// ReplaceForDay upserts a quick-entry segment for a day: updates the
	// employee's first segment of the day or inserts a new one.
	ReplaceForDay(ctx context.Context, employeeID string, dayStartUTC, dayEndUTC time.Time, segment Segment) error

	// DeleteForDay removes all of an employee's segments for one day.
	DeleteForDay(ctx context.Context, employeeID string, dayStartUTC, dayEndUTC time.Time) (int64, error)

	Delete(ctx context.Context, id string) error
}
