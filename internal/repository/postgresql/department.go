package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT d.id, d.company_id, d.branch_id, d.name, d.code, d.parent_department_id,
		   d.manager_id, d.description, d.is_active, d.created_by, d.created_at,
		   d.modified_by, d.modified_at,
		   b.name, p.name, NULLIF(TRIM(m.first_name || ' ' || m.last_name), ''),
		   (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id AND e.is_active)
	FROM departments d
	LEFT JOIN branches b ON b.id = d.branch_id
	LEFT JOIN departments p ON p.id = d.parent_department_id
	LEFT JOIN employees m ON m.id = d.manager_id`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.BranchID, &d.Name, &d.Code, &d.ParentDepartmentID,
		&d.ManagerID, &d.Description, &d.IsActive, &d.CreatedBy, &d.CreatedAt,
		&d.ModifiedBy, &d.ModifiedAt,
		&d.BranchName, &d.ParentDepartmentName, &d.ManagerName,
		&d.EmployeeCount,
	)
	return d, err
}

func collectDepartments(rows pgx.Rows) ([]department.Department, error) {
	defer rows.Close()
	var result []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return result, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (
			company_id, branch_id, name, code, parent_department_id, manager_id, description, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at
	`

	err := q.QueryRow(ctx, query,
		d.CompanyID, d.BranchID, d.Name, d.Code, d.ParentDepartmentID, d.ManagerID, d.Description, d.CreatedBy,
	).Scan(&d.ID, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "departments_company_code_key") {
			return department.Department{}, department.ErrDepartmentCodeExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return d, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+` WHERE d.id = $1 AND d.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.DepartmentFilter) ([]department.Department, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE d.company_id = $1"
	args := []interface{}{filter.CompanyID}
	argIdx := 2
	if filter.BranchID != nil {
		where += fmt.Sprintf(" AND d.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments d`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	page, pageSize := pagination.Normalize(filter.Page, filter.PageSize)
	query := departmentSelect + where + fmt.Sprintf(" ORDER BY d.name, d.id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, pagination.Offset(page, pageSize))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}
	result, err := collectDepartments(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// ListByBranch implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListByBranch(ctx context.Context, companyID, branchID string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, departmentSelect+` WHERE d.company_id = $1 AND d.branch_id = $2 ORDER BY d.name`, companyID, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments by branch: %w", err)
	}
	return collectDepartments(rows)
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $3, code = $4, parent_department_id = $5, manager_id = $6,
			description = $7, is_active = $8, modified_by = $9, modified_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		d.ID, d.CompanyID, d.Name, d.Code, d.ParentDepartmentID, d.ManagerID,
		d.Description, d.IsActive, d.ModifiedBy,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "departments_company_code_key") {
			return department.ErrDepartmentCodeExists
		}
		return fmt.Errorf("failed to update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, companyID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return department.ErrDepartmentHasEmployees
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// CountActiveEmployees implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) CountActiveEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id = $1 AND is_active`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count department employees: %w", err)
	}
	return count, nil
}

// CountChildren implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) CountChildren(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments WHERE parent_department_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count child departments: %w", err)
	}
	return count, nil
}

// GetAncestorIDs implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetAncestorIDs(ctx context.Context, id string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH RECURSIVE ancestors(id, parent_id, depth) AS (
			SELECT id, parent_department_id, 0 FROM departments WHERE id = $1
			UNION ALL
			SELECT d.id, d.parent_department_id, a.depth + 1
			FROM departments d
			JOIN ancestors a ON d.id = a.parent_id
			WHERE a.depth < 64
		)
		SELECT id FROM ancestors WHERE depth > 0 ORDER BY depth
	`

	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to walk department ancestors: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect department ancestors: %w", err)
	}
	return ids, nil
}
