package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userSelect = `
	SELECT u.id, u.company_id, u.email, u.password_hash, u.role, u.is_active,
		   u.last_login_at, u.failed_login_attempts, u.lockout_end,
		   u.created_at, u.updated_at,
		   e.id, NULLIF(TRIM(e.first_name || ' ' || e.last_name), '')
	FROM users u
	LEFT JOIN employees e ON e.user_id = u.id`

func scanUser(row pgx.Row) (user.User, error) {
	var found user.User
	err := row.Scan(
		&found.ID,
		&found.CompanyID,
		&found.Email,
		&found.PasswordHash,
		&found.Role,
		&found.IsActive,
		&found.LastLoginAt,
		&found.FailedLoginAttempts,
		&found.LockoutEnd,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeID,
		&found.FullName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, userSelect+` WHERE LOWER(u.email) = LOWER($1)`, email))
}

// RecordFailedLogin implements user.UserRepository.
func (r *userRepositoryImpl) RecordFailedLogin(ctx context.Context, id string, maxAttempts int, lockUntil time.Time) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	// The increment and the lock decision happen in one statement so that
	// concurrent failures cannot skip the threshold.
	query := `
		UPDATE users
		SET failed_login_attempts = CASE
				WHEN failed_login_attempts + 1 >= $2 THEN 0
				ELSE failed_login_attempts + 1
			END,
			lockout_end = CASE
				WHEN failed_login_attempts + 1 >= $2 THEN $3
				ELSE lockout_end
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, maxAttempts, lockUntil).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to record failed login: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// RecordSuccessfulLogin implements user.UserRepository.
func (r *userRepositoryImpl) RecordSuccessfulLogin(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET failed_login_attempts = 0, lockout_end = NULL, last_login_at = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
