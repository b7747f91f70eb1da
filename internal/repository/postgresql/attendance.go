package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
)

type segmentRepository struct {
	db *database.DB
}

func NewSegmentRepository(db *database.DB) attendance.SegmentRepository {
	return &segmentRepository{db: db}
}

const segmentColumns = `
	s.id, s.employee_id, s.clocked_by_employee_id,
	s.clock_in, s.clock_out,
	s.clock_in_latitude, s.clock_in_longitude,
	s.clock_out_latitude, s.clock_out_longitude,
	s.site_id, s.work_category,
	s.hours_worked, s.overtime_hours, s.weekday_overtime_hours, s.sunday_holiday_overtime_hours,
	s.overtime_status, s.overtime_location, s.overtime_note,
	s.overtime_approved_by_id, s.overtime_decision_time,
	s.created_at, s.updated_at,
	e.name AS employee_name, e.department_id, d.name AS department_name,
	st.name AS site_name, a.name AS approver_name
`

const segmentJoins = `
	FROM attendance_segments s
	JOIN employees e ON e.id = s.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN sites st ON st.id = s.site_id
	LEFT JOIN employees a ON a.id = s.overtime_approved_by_id
`

func scanSegment(row pgx.Row) (attendance.Segment, error) {
	var seg attendance.Segment
	err := row.Scan(
		&seg.ID, &seg.EmployeeID, &seg.ClockedByEmployeeID,
		&seg.ClockIn, &seg.ClockOut,
		&seg.ClockInLatitude, &seg.ClockInLongitude,
		&seg.ClockOutLatitude, &seg.ClockOutLongitude,
		&seg.SiteID, &seg.WorkCategory,
		&seg.HoursWorked, &seg.OvertimeHours, &seg.WeekdayOvertimeHours, &seg.SundayHolidayOvertimeHours,
		&seg.OvertimeStatus, &seg.OvertimeLocation, &seg.OvertimeNote,
		&seg.OvertimeApprovedByID, &seg.OvertimeDecisionTime,
		&seg.CreatedAt, &seg.UpdatedAt,
		&seg.EmployeeName, &seg.DepartmentID, &seg.DepartmentName,
		&seg.SiteName, &seg.OvertimeApprovedName,
	)
	return seg, err
}

// GetByID implements attendance.SegmentRepository.
func (r *segmentRepository) GetByID(ctx context.Context, id string) (attendance.Segment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + segmentColumns + segmentJoins + ` WHERE s.id = $1`

	seg, err := scanSegment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Segment{}, attendance.ErrSegmentNotFound
		}
		return attendance.Segment{}, fmt.Errorf("failed to get segment: %w", err)
	}
	return seg, nil
}

// GetOpenSegment implements attendance.SegmentRepository.
func (r *segmentRepository) GetOpenSegment(ctx context.Context, employeeID string) (*attendance.Segment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + segmentColumns + segmentJoins + `
		WHERE s.employee_id = $1 AND s.clock_out IS NULL
		ORDER BY s.clock_in DESC
		LIMIT 1
	`

	seg, err := scanSegment(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open segment: %w", err)
	}
	return &seg, nil
}

// GetLastSegment implements attendance.SegmentRepository.
func (r *segmentRepository) GetLastSegment(ctx context.Context, employeeID string) (*attendance.Segment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + segmentColumns + segmentJoins + `
		WHERE s.employee_id = $1
		ORDER BY s.clock_in DESC
		LIMIT 1
	`

	seg, err := scanSegment(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last segment: %w", err)
	}
	return &seg, nil
}

// CreateIfNotClockedIn implements attendance.SegmentRepository. The open
// segment check and the insert run in one transaction with the existing open
// row locked, so two concurrent clock-ins cannot both succeed.
func (r *segmentRepository) CreateIfNotClockedIn(ctx context.Context, segment attendance.Segment) (attendance.Segment, error) {
	var created attendance.Segment

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		var openID string
		err := q.QueryRow(txCtx, `
			SELECT id FROM attendance_segments
			WHERE employee_id = $1 AND clock_out IS NULL
			FOR UPDATE
		`, segment.EmployeeID).Scan(&openID)
		if err == nil {
			return attendance.ErrAlreadyClockedIn
		}
		if err != pgx.ErrNoRows {
			return fmt.Errorf("failed to check open segment: %w", err)
		}

		insert := `
			INSERT INTO attendance_segments (
				employee_id, clocked_by_employee_id, clock_in, clock_out,
				clock_in_latitude, clock_in_longitude,
				site_id, work_category, overtime_status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`
		created = segment
		return q.QueryRow(txCtx, insert,
			segment.EmployeeID,
			segment.ClockedByEmployeeID,
			segment.ClockIn,
			segment.ClockOut,
			segment.ClockInLatitude,
			segment.ClockInLongitude,
			segment.SiteID,
			segment.WorkCategory,
			segment.OvertimeStatus,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	})
	if err != nil {
		return attendance.Segment{}, err
	}
	return created, nil
}

// CloseOpenSegment implements attendance.SegmentRepository.
func (r *segmentRepository) CloseOpenSegment(ctx context.Context, employeeID string, clockOut time.Time, lat, lng *float64, clockedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_segments
		SET clock_out = $2,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			clocked_by_employee_id = $5,
			updated_at = NOW()
		WHERE employee_id = $1 AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, employeeID, clockOut, lat, lng, clockedBy)
	if err != nil {
		return fmt.Errorf("failed to close open segment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNotClockedIn
	}
	return nil
}

// ListByRange implements attendance.SegmentRepository.
func (r *segmentRepository) ListByRange(ctx context.Context, fromUTC, toUTC time.Time, filter attendance.DayFilter) ([]attendance.Segment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + segmentColumns + segmentJoins + `
		WHERE s.clock_in >= $1 AND s.clock_in < $2
	`
	args := []interface{}{fromUTC, toUTC}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND s.employee_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}

	query += " ORDER BY s.employee_id, s.clock_in"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	defer rows.Close()

	var segments []attendance.Segment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate segments: %w", err)
	}

	return segments, nil
}

// Update implements attendance.SegmentRepository.
func (r *segmentRepository) Update(ctx context.Context, segment attendance.Segment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_segments
		SET clock_in = $2,
			clock_out = $3,
			work_category = $4,
			overtime_status = $5,
			overtime_location = $6,
			overtime_note = $7,
			overtime_approved_by_id = $8,
			overtime_decision_time = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		segment.ID,
		segment.ClockIn,
		segment.ClockOut,
		segment.WorkCategory,
		segment.OvertimeStatus,
		segment.OvertimeLocation,
		segment.OvertimeNote,
		segment.OvertimeApprovedByID,
		segment.OvertimeDecisionTime,
	)
	if err != nil {
		return fmt.Errorf("failed to update segment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSegmentNotFound
	}
	return nil
}

// PersistDerived implements attendance.SegmentRepository. The write is a pure
// cache refresh; the status is only promoted between the computed states and
// never overwrites a stored approval or denial.
func (r *segmentRepository) PersistDerived(ctx context.Context, segments []attendance.Segment) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE attendance_segments
			SET hours_worked = $2,
				overtime_hours = $3,
				weekday_overtime_hours = $4,
				sunday_holiday_overtime_hours = $5,
				overtime_status = CASE
					WHEN overtime_status IN ('approved', 'denied') THEN overtime_status
					ELSE $6
				END,
				updated_at = NOW()
			WHERE id = $1
		`

		for _, seg := range segments {
			if seg.ID == "" {
				continue
			}
			if _, err := q.Exec(txCtx, query,
				seg.ID,
				seg.HoursWorked,
				seg.OvertimeHours,
				seg.WeekdayOvertimeHours,
				seg.SundayHolidayOvertimeHours,
				seg.OvertimeStatus,
			); err != nil {
				return fmt.Errorf("failed to persist derived fields: %w", err)
			}
		}
		return nil
	})
}

// ReplaceForDay implements attendance.SegmentRepository.
func (r *segmentRepository) ReplaceForDay(ctx context.Context, employeeID string, dayStartUTC, dayEndUTC time.Time, segment attendance.Segment) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		var existingID string
		err := q.QueryRow(txCtx, `
			SELECT id FROM attendance_segments
			WHERE employee_id = $1 AND clock_in >= $2 AND clock_in < $3
			ORDER BY clock_in
			LIMIT 1
			FOR UPDATE
		`, employeeID, dayStartUTC, dayEndUTC).Scan(&existingID)

		if err == pgx.ErrNoRows {
			insert := `
				INSERT INTO attendance_segments (
					employee_id, clocked_by_employee_id, clock_in, clock_out,
					work_category, overtime_status
				) VALUES ($1, $2, $3, $4, $5, $6)
			`
			if _, err := q.Exec(txCtx, insert,
				segment.EmployeeID,
				segment.ClockedByEmployeeID,
				segment.ClockIn,
				segment.ClockOut,
				segment.WorkCategory,
				segment.OvertimeStatus,
			); err != nil {
				return fmt.Errorf("failed to insert quick entry: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find segment for day: %w", err)
		}

		update := `
			UPDATE attendance_segments
			SET clock_in = $2,
				clock_out = $3,
				clocked_by_employee_id = $4,
				overtime_status = 'none',
				overtime_location = NULL,
				overtime_note = NULL,
				overtime_approved_by_id = NULL,
				overtime_decision_time = NULL,
				updated_at = NOW()
			WHERE id = $1
		`
		if _, err := q.Exec(txCtx, update,
			existingID,
			segment.ClockIn,
			segment.ClockOut,
			segment.ClockedByEmployeeID,
		); err != nil {
			return fmt.Errorf("failed to update quick entry: %w", err)
		}
		return nil
	})
}

// DeleteForDay implements attendance.SegmentRepository.
func (r *segmentRepository) DeleteForDay(ctx context.Context, employeeID string, dayStartUTC, dayEndUTC time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM attendance_segments
		WHERE employee_id = $1 AND clock_in >= $2 AND clock_in < $3
	`, employeeID, dayStartUTC, dayEndUTC)
	if err != nil {
		return 0, fmt.Errorf("failed to delete segments for day: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete implements attendance.SegmentRepository.
func (r *segmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_segments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSegmentNotFound
	}
	return nil
}
