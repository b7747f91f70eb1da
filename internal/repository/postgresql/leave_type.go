package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

const leaveTypeColumns = `
	id, name, description, color_code, is_active, is_deleted,
	pool_type, accrual_type, days_per_year, days_per_cycle, cycle_duration_months,
	allows_carryover, max_carryover_days, allows_half_days,
	is_gender_specific, required_gender, sort_order,
	created_at, updated_at
`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(
		&lt.ID, &lt.Name, &lt.Description, &lt.ColorCode, &lt.IsActive, &lt.IsDeleted,
		&lt.PoolType, &lt.AccrualType, &lt.DaysPerYear, &lt.DaysPerCycle, &lt.CycleDurationMonths,
		&lt.AllowsCarryover, &lt.MaxCarryoverDays, &lt.AllowsHalfDays,
		&lt.IsGenderSpecific, &lt.RequiredGender, &lt.SortOrder,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	return lt, err
}

// GetByID implements leave.LeaveTypeRepository. Soft-deleted types are
// treated as missing.
func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types
		WHERE id = $1 AND is_deleted = false
	`

	lt, err := scanLeaveType(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return lt, nil
}

// ListActive implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types
		WHERE is_deleted = false
		ORDER BY sort_order, name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave types: %w", err)
	}

	return types, nil
}
