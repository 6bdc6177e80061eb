package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// NewEmployeeDirectory exposes the reporting lines attendance queries filter on.
func NewEmployeeDirectory(db *database.DB) attendance.Directory {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.company_id, e.user_id, e.employee_code, e.first_name, e.last_name,
		   e.department_id, e.designation_id, e.manager_id, e.date_of_birth, e.gender,
		   e.phone_number, e.address, e.join_date, e.resignation_date, e.is_active,
		   e.created_by, e.created_at, e.modified_by, e.modified_at,
		   u.email, d.name, d.code, g.name, g.level,
		   NULLIF(TRIM(m.first_name || ' ' || m.last_name), '')
	FROM employees e
	JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id
	LEFT JOIN employees m ON m.id = e.manager_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.UserID, &e.EmployeeCode, &e.FirstName, &e.LastName,
		&e.DepartmentID, &e.DesignationID, &e.ManagerID, &e.DateOfBirth, &e.Gender,
		&e.PhoneNumber, &e.Address, &e.JoinDate, &e.ResignationDate, &e.IsActive,
		&e.CreatedBy, &e.CreatedAt, &e.ModifiedBy, &e.ModifiedAt,
		&e.Email, &e.DepartmentName, &e.DepartmentCode, &e.DesignationName, &e.DesignationLevel,
		&e.ManagerName,
	)
	return e, err
}

func mapEmployeeWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err, "employees_company_code_key"):
		return employee.ErrEmployeeCodeExists
	case database.IsUniqueViolation(err, "employees_user_id_key"):
		return employee.ErrUserAlreadyHasProfile
	}
	return err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			company_id, user_id, employee_code, first_name, last_name, department_id,
			designation_id, manager_id, date_of_birth, gender, phone_number, address,
			join_date, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, is_active, created_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.CompanyID,
		newEmployee.UserID,
		newEmployee.EmployeeCode,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.DepartmentID,
		newEmployee.DesignationID,
		newEmployee.ManagerID,
		newEmployee.DateOfBirth,
		newEmployee.Gender,
		newEmployee.PhoneNumber,
		newEmployee.Address,
		newEmployee.JoinDate,
		newEmployee.CreatedBy,
	).Scan(&newEmployee.ID, &newEmployee.IsActive, &newEmployee.CreatedAt)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1 AND e.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}
	return e, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET employee_code = $3, first_name = $4, last_name = $5, department_id = $6,
			designation_id = $7, manager_id = $8, date_of_birth = $9, gender = $10,
			phone_number = $11, address = $12, join_date = $13, resignation_date = $14,
			modified_by = $15, modified_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		e.ID, e.CompanyID, e.EmployeeCode, e.FirstName, e.LastName, e.DepartmentID,
		e.DesignationID, e.ManagerID, e.DateOfBirth, e.Gender,
		e.PhoneNumber, e.Address, e.JoinDate, e.ResignationDate,
		e.ModifiedBy,
	)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, companyID, id, actorID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_active = FALSE, modified_by = $3, modified_at = NOW()
		WHERE id = $1 AND company_id = $2 AND is_active
	`

	tag, err := q.Exec(ctx, query, id, companyID, actorID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeAlreadyInactive
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE e.company_id = $1"
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if !filter.IncludeInactive {
		where += " AND e.is_active"
	}
	if filter.DepartmentID != nil {
		where += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(` AND (e.first_name ILIKE $%[1]d OR e.last_name ILIKE $%[1]d
			OR e.employee_code ILIKE $%[1]d OR u.email ILIKE $%[1]d)`, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM employees e JOIN users u ON u.id = e.user_id` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	page, pageSize := pagination.Normalize(filter.Page, filter.PageSize)
	query := employeeSelect + where + fmt.Sprintf(" ORDER BY e.employee_code, e.id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, pagination.Offset(page, pageSize))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// ExistsByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee profile: %w", err)
	}
	return exists, nil
}

// CountActiveSubordinates implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountActiveSubordinates(ctx context.Context, companyID, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT COUNT(*) FROM employees WHERE company_id = $1 AND manager_id = $2 AND is_active`
	if err := q.QueryRow(ctx, query, companyID, managerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subordinates: %w", err)
	}
	return count, nil
}

// GetEmployeeBranch implements attendance.Directory.
func (r *employeeRepositoryImpl) GetEmployeeBranch(ctx context.Context, employeeID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.branch_id
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE e.id = $1
	`

	var branchID string
	if err := q.QueryRow(ctx, query, employeeID).Scan(&branchID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get employee branch: %w", err)
	}
	return branchID, nil
}

// GetDirectReports implements attendance.Directory.
func (r *employeeRepositoryImpl) GetDirectReports(ctx context.Context, companyID, managerID string) ([]string, error) {
	return r.collectIDs(ctx,
		`SELECT id FROM employees WHERE company_id = $1 AND manager_id = $2 AND is_active`,
		companyID, managerID)
}

// GetDepartmentMembers implements attendance.Directory.
func (r *employeeRepositoryImpl) GetDepartmentMembers(ctx context.Context, companyID, departmentID string) ([]string, error) {
	return r.collectIDs(ctx,
		`SELECT id FROM employees WHERE company_id = $1 AND department_id = $2 AND is_active`,
		companyID, departmentID)
}

func (r *employeeRepositoryImpl) collectIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect employee ids: %w", err)
	}
	// Non-nil so callers can tell "no members" from "no filter".
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
