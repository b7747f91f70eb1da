package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
)

type balanceRepository struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepository{db: db}
}

// GetByEmployeeAndType implements leave.BalanceRepository.
func (r *balanceRepository) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (*leave.BalanceRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.employee_id, b.leave_type_id,
			   b.balance_start_date, b.opening_balance, b.current_balance,
			   b.cycle_start_date, b.cycle_end_date,
			   b.created_at, b.updated_at,
			   e.name AS employee_name, t.name AS leave_type_name
		FROM leave_balances b
		JOIN employees e ON e.id = b.employee_id
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.leave_type_id = $2
	`

	var row leave.BalanceRow
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&row.ID, &row.EmployeeID, &row.LeaveTypeID,
		&row.BalanceStartDate, &row.OpeningBalance, &row.CurrentBalance,
		&row.CycleStartDate, &row.CycleEndDate,
		&row.CreatedAt, &row.UpdatedAt,
		&row.EmployeeName, &row.LeaveTypeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance row: %w", err)
	}

	return &row, nil
}

// Update implements leave.BalanceRepository.
func (r *balanceRepository) Update(ctx context.Context, row leave.BalanceRow) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance_start_date = $2,
			opening_balance = $3,
			current_balance = $4,
			cycle_start_date = $5,
			cycle_end_date = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		row.ID,
		row.BalanceStartDate,
		row.OpeningBalance,
		row.CurrentBalance,
		row.CycleStartDate,
		row.CycleEndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceRowNotFound
	}
	return nil
}
