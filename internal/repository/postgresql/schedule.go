package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/schedule"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Daily times are stored as minutes from midnight.
const scheduleColumns = `
	s.department_id, d.name AS department_name, s.required_hours_per_week,
	s.daily_start_minutes, s.daily_end_minutes, s.break_minutes,
	s.works_saturday, s.saturday_hours, s.works_sunday, s.sunday_hours,
	s.grace_minutes_before, s.grace_minutes_after, s.allow_overtime
`

// GetByDepartmentID implements schedule.ScheduleRepository.
func (s *scheduleRepository) GetByDepartmentID(ctx context.Context, departmentID string) (schedule.DepartmentSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM department_schedules s
		JOIN departments d ON d.id = s.department_id
		WHERE s.department_id = $1
	`

	sched, err := scanSchedule(q.QueryRow(ctx, query, departmentID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.DepartmentSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.DepartmentSchedule{}, fmt.Errorf("failed to get department schedule: %w", err)
	}

	return sched, nil
}

// List implements schedule.ScheduleRepository.
func (s *scheduleRepository) List(ctx context.Context) ([]schedule.DepartmentSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM department_schedules s
		JOIN departments d ON d.id = s.department_id
		ORDER BY d.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list department schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.DepartmentSchedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department schedule: %w", err)
		}
		schedules = append(schedules, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department schedules: %w", err)
	}

	return schedules, nil
}

func scanSchedule(row pgx.Row) (schedule.DepartmentSchedule, error) {
	var sched schedule.DepartmentSchedule
	var startMinutes, endMinutes, breakMinutes int

	err := row.Scan(
		&sched.DepartmentID, &sched.DepartmentName, &sched.RequiredHoursPerWeek,
		&startMinutes, &endMinutes, &breakMinutes,
		&sched.WorksSaturday, &sched.SaturdayHours, &sched.WorksSunday, &sched.SundayHours,
		&sched.GraceMinutesBefore, &sched.GraceMinutesAfter, &sched.AllowOvertime,
	)
	if err != nil {
		return schedule.DepartmentSchedule{}, err
	}

	sched.DailyStart = time.Duration(startMinutes) * time.Minute
	sched.DailyEnd = time.Duration(endMinutes) * time.Minute
	sched.BreakPerDay = time.Duration(breakMinutes) * time.Minute

	return sched, nil
}
