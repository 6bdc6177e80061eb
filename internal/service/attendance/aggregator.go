package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Aggregator folds ledger rows into monthly summaries and cross-employee pages.
type Aggregator struct {
	repo      attendance.AttendanceRepository
	directory attendance.Directory
	policies  attendance.PolicyConfigStore
}

func NewAggregator(repo attendance.AttendanceRepository, directory attendance.Directory, policies attendance.PolicyConfigStore) *Aggregator {
	return &Aggregator{repo: repo, directory: directory, policies: policies}
}

func (a *Aggregator) Summarize(ctx context.Context, employeeID string, month, year int) (attendance.Summary, error) {
	branchID, err := a.directory.GetEmployeeBranch(ctx, employeeID)
	if err != nil {
		return attendance.Summary{}, err
	}
	first, last := monthBounds(year, time.Month(month))

	var (
		records  []attendance.Attendance
		cfg      *attendance.PolicyConfig
		holidays []attendance.Holiday
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = a.repo.ListByEmployeeInRange(gCtx, employeeID, first, last)
		if err != nil {
			return fmt.Errorf("failed to load month attendance: %w", err)
		}
		return nil
	})

	// The config in force on the first of the month defines the weekend.
	g.Go(func() error {
		var err error
		cfg, err = a.policies.GetEffectiveConfig(gCtx, branchID, first)
		return err
	})

	g.Go(func() error {
		var err error
		holidays, err = a.policies.ListHolidays(gCtx, branchID, first, last)
		return err
	})

	if err := g.Wait(); err != nil {
		return attendance.Summary{}, err
	}

	policy := DefaultPolicyConfig()
	if cfg != nil {
		policy = *cfg
	}

	return Fold(employeeID, month, year, records, BusinessDays(year, time.Month(month), policy, holidays)), nil
}

// Fold computes a summary from one month of rows. It never fails.
func Fold(employeeID string, month, year int, records []attendance.Attendance, businessDays int) attendance.Summary {
	summary := attendance.Summary{
		EmployeeID:       employeeID,
		Month:            month,
		Year:             year,
		TotalDays:        businessDays,
		TotalWorkHours:   decimal.Zero,
		AverageWorkHours: decimal.Zero,
	}

	for _, r := range records {
		switch {
		case r.Status.CountsAsPresent():
			summary.PresentDays++
			if r.Status == attendance.StatusLate {
				summary.LateDays++
			}
			if r.WorkHours != nil {
				summary.TotalWorkHours = summary.TotalWorkHours.Add(*r.WorkHours)
			}
		case r.Status == attendance.StatusLeave:
			summary.LeaveDays++
		}
	}

	summary.AbsentDays = max(0, businessDays-(summary.PresentDays+summary.LeaveDays))
	if summary.PresentDays > 0 {
		summary.AverageWorkHours = summary.TotalWorkHours.
			Div(decimal.NewFromInt(int64(summary.PresentDays))).
			Round(2)
	}

	return summary
}

// ByDate pages a company's rows on date, optionally limited to one department.
// Out-of-range page values fall back to the pagination defaults.
func (a *Aggregator) ByDate(ctx context.Context, companyID string, date time.Time, departmentID *string, page, pageSize int) ([]attendance.Attendance, int64, error) {
	page, pageSize = pagination.Normalize(page, pageSize)
	return a.byDate(ctx, companyID, date, departmentID, page, pageSize)
}

// allByDate returns every row ByDate would page through.
func (a *Aggregator) allByDate(ctx context.Context, companyID string, date time.Time, departmentID *string) ([]attendance.Attendance, error) {
	records, _, err := a.byDate(ctx, companyID, date, departmentID, 0, 0)
	return records, err
}

func (a *Aggregator) byDate(ctx context.Context, companyID string, date time.Time, departmentID *string, page, pageSize int) ([]attendance.Attendance, int64, error) {
	var ids []string
	if departmentID != nil {
		members, err := a.directory.GetDepartmentMembers(ctx, companyID, *departmentID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to resolve department members: %w", err)
		}
		if len(members) == 0 {
			return nil, 0, nil
		}
		ids = members
	}
	return a.list(ctx, companyID, date, ids, page, pageSize)
}

// ByTeam pages the rows of managerID's direct reports on date.
func (a *Aggregator) ByTeam(ctx context.Context, companyID, managerID string, date time.Time, page, pageSize int) ([]attendance.Attendance, int64, error) {
	reports, err := a.directory.GetDirectReports(ctx, companyID, managerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve direct reports: %w", err)
	}
	if len(reports) == 0 {
		return nil, 0, nil
	}
	page, pageSize = pagination.Normalize(page, pageSize)
	return a.list(ctx, companyID, date, reports, page, pageSize)
}

func (a *Aggregator) list(ctx context.Context, companyID string, date time.Time, ids []string, page, pageSize int) ([]attendance.Attendance, int64, error) {
	records, total, err := a.repo.ListByDate(ctx, attendance.DateFilter{
		CompanyID:   companyID,
		Date:        civilDate(date),
		EmployeeIDs: ids,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, total, nil
}
