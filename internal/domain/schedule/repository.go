package schedule

import "context"

// ScheduleRepository defines data access for department schedules.
type ScheduleRepository interface {
	// GetByDepartmentID retrieves the schedule policy for a department.
	// Returns ErrScheduleNotFound when the department does not exist.
	GetByDepartmentID(ctx context.Context, departmentID string) (DepartmentSchedule, error)

	List(ctx context.Context) ([]DepartmentSchedule, error)
}
