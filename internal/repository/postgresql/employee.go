package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Upsert implements employee.EmployeeRepository. A re-import replaces the
// employee's profile and raw columns wholesale.
func (r *employeeRepositoryImpl) Upsert(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	fieldsJSON, err := json.Marshal(emp.Fields)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to marshal employee fields: %w", err)
	}

	query := `
		INSERT INTO employees (employee_id, name, department, base_location, doj, lwd, monthly_gross, fields)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id) DO UPDATE SET
			name = EXCLUDED.name,
			department = EXCLUDED.department,
			base_location = EXCLUDED.base_location,
			doj = EXCLUDED.doj,
			lwd = EXCLUDED.lwd,
			monthly_gross = EXCLUDED.monthly_gross,
			fields = EXCLUDED.fields,
			updated_at = NOW()
		RETURNING employee_id, name, department, base_location, doj, lwd, monthly_gross, fields,
				  created_at, updated_at
	`

	return scanEmployee(q.QueryRow(ctx, query,
		emp.EmployeeID,
		emp.Name,
		emp.Department,
		emp.BaseLocation,
		emp.DOJ,
		emp.LWD,
		emp.MonthlyGross,
		fieldsJSON,
	))
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, name, department, base_location, doj, lwd, monthly_gross, fields,
			   created_at, updated_at
		FROM employees
		WHERE employee_id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, name, department, base_location, doj, lwd, monthly_gross, fields,
			   created_at, updated_at
		FROM employees
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

// ListFieldNames implements employee.EmployeeRepository. Headers keep the
// order of their first appearance across the imported rows.
func (r *employeeRepositoryImpl) ListFieldNames(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT fields
		FROM employees
		ORDER BY created_at, employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	seen := make(map[string]bool)
	for rows.Next() {
		var fieldsJSON []byte
		if err := rows.Scan(&fieldsJSON); err != nil {
			return nil, err
		}
		var fields []employee.Field
		if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal employee fields: %w", err)
		}
		for _, f := range fields {
			key := strings.ToLower(strings.TrimSpace(f.Name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, f.Name)
		}
	}
	return names, rows.Err()
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var fieldsJSON []byte

	err := row.Scan(
		&emp.EmployeeID,
		&emp.Name,
		&emp.Department,
		&emp.BaseLocation,
		&emp.DOJ,
		&emp.LWD,
		&emp.MonthlyGross,
		&fieldsJSON,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if err := json.Unmarshal(fieldsJSON, &emp.Fields); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to unmarshal employee fields: %w", err)
	}
	return emp, nil
}
