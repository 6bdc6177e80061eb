package attendance

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/google/uuid"
)

type fakeAttendanceRepo struct {
	mu   sync.Mutex
	rows map[string]*attendance.Attendance // keyed by employee|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*attendance.Attendance)}
}

func rowKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) put(a attendance.Attendance) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.rows[rowKey(a.EmployeeID, a.AttendanceDate)] = &a
}

func (f *fakeAttendanceRepo) CreateIfAbsent(_ context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := rowKey(a.EmployeeID, a.AttendanceDate)
	if _, exists := f.rows[key]; exists {
		return attendance.Attendance{}, false, nil
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	f.rows[key] = &a
	return a, true, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[rowKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeAttendanceRepo) Close(_ context.Context, a attendance.Attendance) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[rowKey(a.EmployeeID, a.AttendanceDate)]
	if !ok || row.ID != a.ID || row.CheckOutTime != nil {
		return false, nil
	}
	*row = a
	return true, nil
}

func (f *fakeAttendanceRepo) sorted(match func(attendance.Attendance) bool) []attendance.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Attendance
	for _, row := range f.rows {
		if match(*row) {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AttendanceDate.Equal(out[j].AttendanceDate) {
			return out[i].AttendanceDate.After(out[j].AttendanceDate)
		}
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func pageOf(rows []attendance.Attendance, page, pageSize int) []attendance.Attendance {
	if pageSize <= 0 {
		return rows
	}
	page, pageSize = pagination.Normalize(page, pageSize)
	start := min(pagination.Offset(page, pageSize), len(rows))
	end := min(start+pageSize, len(rows))
	return rows[start:end]
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	rows := f.sorted(func(a attendance.Attendance) bool {
		if a.EmployeeID != filter.EmployeeID {
			return false
		}
		if filter.StartDate != nil && a.AttendanceDate.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && a.AttendanceDate.After(*filter.EndDate) {
			return false
		}
		return true
	})
	return pageOf(rows, filter.Page, filter.PageSize), int64(len(rows)), nil
}

func (f *fakeAttendanceRepo) ListByEmployeeInRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return f.sorted(func(a attendance.Attendance) bool {
		return a.EmployeeID == employeeID && !a.AttendanceDate.Before(from) && !a.AttendanceDate.After(to)
	}), nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, filter attendance.DateFilter) ([]attendance.Attendance, int64, error) {
	rows := f.sorted(func(a attendance.Attendance) bool {
		if a.CompanyID != filter.CompanyID || !a.AttendanceDate.Equal(filter.Date) {
			return false
		}
		return filter.EmployeeIDs == nil || slices.Contains(filter.EmployeeIDs, a.EmployeeID)
	})
	return pageOf(rows, filter.Page, filter.PageSize), int64(len(rows)), nil
}

type fakeDirectory struct {
	branches    map[string]string   // employee -> branch
	managers    map[string]string   // employee -> manager
	departments map[string][]string // department -> members
}

func (d *fakeDirectory) GetEmployeeBranch(_ context.Context, employeeID string) (string, error) {
	branchID, ok := d.branches[employeeID]
	if !ok {
		return "", employee.ErrEmployeeNotFound
	}
	return branchID, nil
}

func (d *fakeDirectory) GetDirectReports(_ context.Context, _, managerID string) ([]string, error) {
	reports := []string{}
	for emp, mgr := range d.managers {
		if mgr == managerID {
			reports = append(reports, emp)
		}
	}
	return reports, nil
}

func (d *fakeDirectory) GetDepartmentMembers(_ context.Context, _, departmentID string) ([]string, error) {
	members := d.departments[departmentID]
	if members == nil {
		members = []string{}
	}
	return members, nil
}

type fakePolicyStore struct {
	locations map[string]*time.Location
	configs   map[string]*attendance.PolicyConfig
	holidays  []attendance.Holiday
}

func (p *fakePolicyStore) GetBranchLocation(_ context.Context, branchID string) (*time.Location, error) {
	if loc, ok := p.locations[branchID]; ok {
		return loc, nil
	}
	return time.UTC, nil
}

func (p *fakePolicyStore) GetEffectiveConfig(_ context.Context, branchID string, _ time.Time) (*attendance.PolicyConfig, error) {
	return p.configs[branchID], nil
}

func (p *fakePolicyStore) ListHolidays(_ context.Context, _ string, from, to time.Time) ([]attendance.Holiday, error) {
	var out []attendance.Holiday
	for _, h := range p.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

const (
	testCompany = "company-1"
	testBranch  = "branch-1"
)

func newFixture() (*fakeAttendanceRepo, *fakeDirectory, *fakePolicyStore) {
	repo := newFakeAttendanceRepo()
	dir := &fakeDirectory{
		branches:    map[string]string{},
		managers:    map[string]string{},
		departments: map[string][]string{},
	}
	policies := &fakePolicyStore{
		locations: map[string]*time.Location{},
		configs:   map[string]*attendance.PolicyConfig{},
	}
	return repo, dir, policies
}
