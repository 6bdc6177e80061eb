package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// fixture ids shared by every integration test
type seed struct {
	CompanyID     string
	BranchID      string
	UserID        string
	DepartmentID  string
	DesignationID string
	EmployeeID    string
}

// newTestDB connects to TEST_DATABASE_URL, applies the schema and clears
// every table. The test is skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx, postgresql.Schema))
	require.NoError(t, truncateAll(ctx, db))
	return db
}

func truncateAll(ctx context.Context, db *database.DB) error {
	tables := []string{
		"attendances",
		"holidays",
		"attendance_settings",
		"refresh_tokens",
		"employees",
		"departments",
		"designations",
		"users",
		"branches",
		"companies",
	}
	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// seedCompany inserts one company with a branch, an HR user, a department,
// a designation and the user's employee profile.
func seedCompany(t *testing.T, db *database.DB) seed {
	t.Helper()
	ctx := context.Background()
	var s seed

	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO companies (name) VALUES ('Acme') RETURNING id`).Scan(&s.CompanyID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO branches (company_id, name, timezone) VALUES ($1, 'HQ', 'Asia/Jakarta') RETURNING id`,
		s.CompanyID).Scan(&s.BranchID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO users (company_id, email, password_hash, role) VALUES ($1, 'hr@acme.test', 'x', 'hr') RETURNING id`,
		s.CompanyID).Scan(&s.UserID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO departments (company_id, branch_id, name, code, created_by) VALUES ($1, $2, 'People', 'PPL', $3) RETURNING id`,
		s.CompanyID, s.BranchID, s.UserID).Scan(&s.DepartmentID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO designations (company_id, name, code, level, created_by) VALUES ($1, 'Officer', 'OFF', 3, $2) RETURNING id`,
		s.CompanyID, s.UserID).Scan(&s.DesignationID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO employees (company_id, user_id, employee_code, first_name, last_name, department_id, designation_id, join_date, created_by)
		 VALUES ($1, $2, 'E001', 'Rina', 'Hart', $3, $4, '2023-01-02', $2) RETURNING id`,
		s.CompanyID, s.UserID, s.DepartmentID, s.DesignationID).Scan(&s.EmployeeID))
	return s
}
