package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

const employeeColumns = `id, first_name, last_name, role, phone, created_at, updated_at`

// SQLiteEmployeeRepo implements EmployeeRepo over SQLite.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

func NewSQLiteEmployeeRepo(db db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: db}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.FirstName,
		e.LastName,
		e.Role,
		e.Phone,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	return r.scanEmployee(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		var e domain.Employee
		var createdStr, updatedStr string
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Role, &e.Phone, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		out, err := populateEmployee(&e, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		employees = append(employees, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

func (r *SQLiteEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET first_name = ?, last_name = ?, role = ?, phone = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.FirstName,
		e.LastName,
		e.Role,
		e.Phone,
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) scanEmployee(row *sql.Row) (*domain.Employee, error) {
	var e domain.Employee
	var createdStr, updatedStr string

	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Role, &e.Phone, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return populateEmployee(&e, createdStr, updatedStr)
}

func populateEmployee(e *domain.Employee, createdStr, updatedStr string) (*domain.Employee, error) {
	var err error
	if e.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return e, nil
}
