package attendance

import (
	"context"
	"time"
)

// HistoryFilter selects one employee's rows. Nil bounds are open.
type HistoryFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}

// DateFilter selects a company's rows on one date. A nil EmployeeIDs means
// every employee; an empty non-nil slice matches nothing.
type DateFilter struct {
	CompanyID   string
	Date        time.Time
	EmployeeIDs []string
	Page        int
	PageSize    int
}

type AttendanceRepository interface {
	// CreateIfAbsent inserts the row unless one exists for (employee, date).
	// created is false on conflict.
	CreateIfAbsent(ctx context.Context, a Attendance) (result Attendance, created bool, err error)

	// GetByEmployeeAndDate returns nil when no row exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Close finalizes an open row. closed is false when the row was already closed.
	Close(ctx context.Context, a Attendance) (closed bool, err error)

	ListByEmployee(ctx context.Context, filter HistoryFilter) ([]Attendance, int64, error)
	ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	ListByDate(ctx context.Context, filter DateFilter) ([]Attendance, int64, error)
}

// Directory resolves employee relations owned by the employee module.
type Directory interface {
	GetEmployeeBranch(ctx context.Context, employeeID string) (branchID string, err error)
	GetDirectReports(ctx context.Context, companyID, managerID string) ([]string, error)
	GetDepartmentMembers(ctx context.Context, companyID, departmentID string) ([]string, error)
}

// PolicyConfigStore reads attendance settings and holidays per branch.
type PolicyConfigStore interface {
	GetBranchLocation(ctx context.Context, branchID string) (*time.Location, error)
	// GetEffectiveConfig returns nil when no settings apply at date.
	GetEffectiveConfig(ctx context.Context, branchID string, date time.Time) (*PolicyConfig, error)
	ListHolidays(ctx context.Context, branchID string, from, to time.Time) ([]Holiday, error)
}
