package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
)

type accrualRepository struct {
	db *database.DB
}

func NewAccrualRepository(db *database.DB) employee.AccrualRepository {
	return &accrualRepository{db: db}
}

// GetByEmployeeID implements employee.AccrualRepository.
func (a *accrualRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.AccrualRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, accrual_rate_per_month, days_per_week,
			   last_accrual_date, created_at, updated_at
		FROM employee_leave_accruals
		WHERE employee_id = $1
	`

	var record employee.AccrualRecord
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&record.ID, &record.EmployeeID, &record.AccrualRatePerMonth, &record.DaysPerWeek,
		&record.LastAccrualDate, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get accrual record: %w", err)
	}

	return &record, nil
}

// Upsert implements employee.AccrualRepository.
func (a *accrualRepository) Upsert(ctx context.Context, record employee.AccrualRecord) (employee.AccrualRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO employee_leave_accruals (
			employee_id, accrual_rate_per_month, days_per_week, last_accrual_date
		) VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE SET
			accrual_rate_per_month = EXCLUDED.accrual_rate_per_month,
			days_per_week = EXCLUDED.days_per_week,
			last_accrual_date = EXCLUDED.last_accrual_date,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.AccrualRatePerMonth,
		record.DaysPerWeek,
		record.LastAccrualDate,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return employee.AccrualRecord{}, fmt.Errorf("failed to upsert accrual record: %w", err)
	}

	return record, nil
}
