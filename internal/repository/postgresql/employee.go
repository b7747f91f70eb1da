package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id, e.name, e.email, e.phone, e.department_id, e.hire_date,
			   e.gender, e.is_active, e.created_at, e.updated_at,
			   d.name AS department_name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Phone, &emp.DepartmentID, &emp.HireDate,
		&emp.Gender, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.DepartmentName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id, e.name, e.email, e.phone, e.department_id, e.hire_date,
			   e.gender, e.is_active, e.created_at, e.updated_at,
			   d.name AS department_name
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.is_active = true
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Name, &emp.Email, &emp.Phone, &emp.DepartmentID, &emp.HireDate,
			&emp.Gender, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
			&emp.DepartmentName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
