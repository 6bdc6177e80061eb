package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
)

// Entry is one check-in or check-out request against the ledger.
type Entry struct {
	EmployeeID string
	CompanyID  string
	ActorID    string
	At         time.Time
	Notes      *string
}

// Ledger owns the NoRecord -> Open -> Closed lifecycle of a daily attendance row.
// Uniqueness per (employee, date) is enforced by storage, not by reads here.
type Ledger struct {
	repo      attendance.AttendanceRepository
	directory attendance.Directory
	policies  attendance.PolicyConfigStore
}

func NewLedger(repo attendance.AttendanceRepository, directory attendance.Directory, policies attendance.PolicyConfigStore) *Ledger {
	return &Ledger{repo: repo, directory: directory, policies: policies}
}

// Location returns the timezone of the employee's branch.
func (l *Ledger) Location(ctx context.Context, employeeID string) (*time.Location, error) {
	branchID, err := l.directory.GetEmployeeBranch(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return l.policies.GetBranchLocation(ctx, branchID)
}

// policyAt resolves the config effective for the employee's branch on the local date of ts.
func (l *Ledger) policyAt(ctx context.Context, employeeID string, ts time.Time) (attendance.PolicyConfig, time.Time, error) {
	branchID, err := l.directory.GetEmployeeBranch(ctx, employeeID)
	if err != nil {
		return attendance.PolicyConfig{}, time.Time{}, err
	}
	loc, err := l.policies.GetBranchLocation(ctx, branchID)
	if err != nil {
		return attendance.PolicyConfig{}, time.Time{}, err
	}
	date := localDate(ts, loc)

	found, err := l.policies.GetEffectiveConfig(ctx, branchID, date)
	if err != nil {
		return attendance.PolicyConfig{}, time.Time{}, err
	}
	cfg := DefaultPolicyConfig()
	if found != nil {
		cfg = *found
	}
	cfg.Location = loc
	return cfg, date, nil
}

func (l *Ledger) CheckIn(ctx context.Context, e Entry) (attendance.Attendance, error) {
	cfg, date, err := l.policyAt(ctx, e.EmployeeID, e.At)
	if err != nil {
		return attendance.Attendance{}, err
	}

	at := e.At
	record := attendance.Attendance{
		CompanyID:      e.CompanyID,
		EmployeeID:     e.EmployeeID,
		AttendanceDate: date,
		CheckInTime:    &at,
		Status:         ClassifyCheckIn(at, cfg),
		LateMinutes:    LateMinutes(at, cfg),
		Notes:          e.Notes,
		CreatedBy:      e.ActorID,
	}

	created, ok, err := l.repo.CreateIfAbsent(ctx, record)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check in: %w", err)
	}
	if !ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	return created, nil
}

func (l *Ledger) CheckOut(ctx context.Context, e Entry) (attendance.Attendance, error) {
	cfg, date, err := l.policyAt(ctx, e.EmployeeID, e.At)
	if err != nil {
		return attendance.Attendance{}, err
	}

	record, err := l.repo.GetByEmployeeAndDate(ctx, e.EmployeeID, date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if record == nil || record.CheckInTime == nil {
		return attendance.Attendance{}, attendance.ErrNoOpenSession
	}
	if record.CheckOutTime != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	if !e.At.After(*record.CheckInTime) {
		return attendance.Attendance{}, attendance.ErrCheckOutBeforeCheckIn
	}

	at := e.At
	actor := e.ActorID
	hours := ComputeWorkHours(*record.CheckInTime, at)

	closed := *record
	closed.CheckOutTime = &at
	closed.WorkHours = &hours
	closed.Status = RefineStatusOnCheckOut(record.Status, hours, cfg)
	closed.EarlyLeaveMinutes = EarlyLeaveMinutes(at, cfg)
	closed.ModifiedBy = &actor
	closed.ModifiedAt = &at
	if e.Notes != nil {
		closed.Notes = e.Notes
	}

	ok, err := l.repo.Close(ctx, closed)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check out: %w", err)
	}
	if !ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	return closed, nil
}

// Today returns nil when the employee has no row for the local date of now.
func (l *Ledger) Today(ctx context.Context, employeeID string, now time.Time) (*attendance.Attendance, error) {
	loc, err := l.Location(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	record, err := l.repo.GetByEmployeeAndDate(ctx, employeeID, localDate(now, loc))
	if err != nil {
		return nil, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	return record, nil
}

// History pages an employee's rows newest first.
func (l *Ledger) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	records, total, err := l.repo.ListByEmployee(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load attendance history: %w", err)
	}
	return records, total, nil
}
