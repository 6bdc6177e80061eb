package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

const designationSelect = `
	SELECT g.id, g.company_id, g.name, g.code, g.level, g.description, g.is_active,
		   g.created_by, g.created_at, g.modified_by, g.modified_at,
		   (SELECT COUNT(*) FROM employees e WHERE e.designation_id = g.id AND e.is_active)
	FROM designations g`

func scanDesignation(row pgx.Row) (designation.Designation, error) {
	var d designation.Designation
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.Code, &d.Level, &d.Description, &d.IsActive,
		&d.CreatedBy, &d.CreatedAt, &d.ModifiedBy, &d.ModifiedAt,
		&d.EmployeeCount,
	)
	return d, err
}

// Create implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO designations (company_id, name, code, level, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at
	`

	err := q.QueryRow(ctx, query, d.CompanyID, d.Name, d.Code, d.Level, d.Description, d.CreatedBy).
		Scan(&d.ID, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "designations_company_code_key") {
			return designation.Designation{}, designation.ErrDesignationCodeExists
		}
		return designation.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}

	return d, nil
}

// GetByID implements designation.DesignationRepository.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDesignation(q.QueryRow(ctx, designationSelect+` WHERE g.id = $1 AND g.company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		return designation.Designation{}, fmt.Errorf("failed to get designation: %w", err)
	}
	return d, nil
}

// List implements designation.DesignationRepository.
func (r *designationRepositoryImpl) List(ctx context.Context, companyID string, page, pageSize int) ([]designation.Designation, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM designations WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count designations: %w", err)
	}

	page, pageSize = pagination.Normalize(page, pageSize)
	rows, err := q.Query(ctx,
		designationSelect+` WHERE g.company_id = $1 ORDER BY g.level, g.name, g.id LIMIT $2 OFFSET $3`,
		companyID, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	var result []designation.Designation
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan designation: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate designations: %w", err)
	}

	return result, total, nil
}

// Update implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Update(ctx context.Context, d designation.Designation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE designations
		SET name = $3, code = $4, level = $5, description = $6, is_active = $7,
			modified_by = $8, modified_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, d.ID, d.CompanyID, d.Name, d.Code, d.Level, d.Description, d.IsActive, d.ModifiedBy)
	if err != nil {
		if database.IsUniqueViolation(err, "designations_company_code_key") {
			return designation.ErrDesignationCodeExists
		}
		return fmt.Errorf("failed to update designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

// Delete implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Delete(ctx context.Context, companyID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM designations WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return designation.ErrDesignationHasEmployees
		}
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

// CountActiveEmployees implements designation.DesignationRepository.
func (r *designationRepositoryImpl) CountActiveEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE designation_id = $1 AND is_active`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count designation employees: %w", err)
	}
	return count, nil
}
