package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) leave.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `
	r.id, r.employee_id, r.leave_type_id,
	r.start_date, r.end_date, r.days_taken, r.portion,
	r.status, r.reason,
	r.requested_at, r.approved_at, r.approved_by,
	r.attachment_file_name, r.created_at,
	e.name AS employee_name, t.name AS leave_type_name
`

const requestJoins = `
	FROM leave_requests r
	JOIN employees e ON e.id = r.employee_id
	JOIN leave_types t ON t.id = r.leave_type_id
`

func scanRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.DaysTaken, &req.Portion,
		&req.Status, &req.Reason,
		&req.RequestedAt, &req.ApprovedAt, &req.ApprovedBy,
		&req.AttachmentFileName, &req.CreatedAt,
		&req.EmployeeName, &req.LeaveTypeName,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (r *requestRepository) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type_id, start_date, end_date,
			days_taken, portion, status, reason,
			requested_at, attachment_file_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveTypeID,
		request.StartDate,
		request.EndDate,
		request.DaysTaken,
		request.Portion,
		request.Status,
		request.Reason,
		request.RequestedAt,
		request.AttachmentFileName,
	).Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.RequestRepository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + requestJoins + ` WHERE r.id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *requestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	query := `
		SELECT ` + requestColumns + requestJoins + `
		WHERE r.employee_id = $1
		ORDER BY r.start_date DESC
	`
	return r.list(ctx, query, employeeID)
}

// ListPending implements leave.RequestRepository.
func (r *requestRepository) ListPending(ctx context.Context) ([]leave.Request, error) {
	query := `
		SELECT ` + requestColumns + requestJoins + `
		WHERE r.status = 'pending'
		ORDER BY r.requested_at
	`
	return r.list(ctx, query)
}

// Update implements leave.RequestRepository.
func (r *requestRepository) Update(ctx context.Context, request leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_at = $3,
			approved_by = $4
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		request.ID,
		request.Status,
		request.ApprovedAt,
		request.ApprovedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// SumApprovedDays implements leave.RequestRepository.
func (r *requestRepository) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, from *time.Time, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days_taken), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND status = 'approved'
		  AND start_date <= $3
	`
	args := []interface{}{employeeID, leaveTypeID, to}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved days: %w", err)
	}
	return sum, nil
}

// FirstApprovedFrom implements leave.RequestRepository.
func (r *requestRepository) FirstApprovedFrom(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + requestJoins + `
		WHERE r.employee_id = $1
		  AND r.leave_type_id = $2
		  AND r.status = 'approved'
		  AND r.start_date >= $3
		  AND r.start_date <= $4
		ORDER BY r.start_date
		LIMIT 1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, employeeID, leaveTypeID, from, to))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get first approved request: %w", err)
	}
	return &req, nil
}

// ListApprovedStartingIn implements leave.RequestRepository.
func (r *requestRepository) ListApprovedStartingIn(ctx context.Context, from, to time.Time, employeeID *string) ([]leave.Request, error) {
	query := `
		SELECT ` + requestColumns + requestJoins + `
		WHERE r.status = 'approved'
		  AND r.start_date >= $1
		  AND r.start_date < $2
	`
	args := []interface{}{from, to}

	if employeeID != nil {
		args = append(args, *employeeID)
		query += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}

	query += " ORDER BY r.start_date"

	return r.list(ctx, query, args...)
}

func (r *requestRepository) list(ctx context.Context, query string, args ...interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}
