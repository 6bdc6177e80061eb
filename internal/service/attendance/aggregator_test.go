package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func march(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestSummarize_NoRecords(t *testing.T) {
	repo, dir, policies := newFixture()
	dir.branches["emp-1"] = testBranch
	agg := NewAggregator(repo, dir, policies)

	summary, err := agg.Summarize(context.Background(), "emp-1", 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", summary.EmployeeID)
	assert.Equal(t, 3, summary.Month)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 21, summary.TotalDays)
	assert.Equal(t, 0, summary.PresentDays)
	assert.Equal(t, 21, summary.AbsentDays)
	assert.True(t, summary.TotalWorkHours.IsZero())
	assert.True(t, summary.AverageWorkHours.IsZero())
}

func TestSummarize_FoldsMonth(t *testing.T) {
	repo, dir, policies := newFixture()
	dir.branches["emp-1"] = testBranch
	policies.holidays = []attendance.Holiday{{Date: march(11), Name: "Nyepi"}}

	rows := []attendance.Attendance{
		{AttendanceDate: march(4), Status: attendance.StatusPresent, WorkHours: hours("8.00")},
		{AttendanceDate: march(5), Status: attendance.StatusLate, WorkHours: hours("7.50")},
		{AttendanceDate: march(6), Status: attendance.StatusHalfDay, WorkHours: hours("3.00")},
		{AttendanceDate: march(7), Status: attendance.StatusLeave},
		{AttendanceDate: march(8), Status: attendance.StatusAbsent},
		{AttendanceDate: march(12), Status: attendance.StatusLate}, // still open
		{AttendanceDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, WorkHours: hours("9")},
	}
	for _, r := range rows {
		r.EmployeeID = "emp-1"
		r.CompanyID = testCompany
		repo.put(r)
	}

	summary, err := NewAggregator(repo, dir, policies).Summarize(context.Background(), "emp-1", 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, 20, summary.TotalDays)
	assert.Equal(t, 4, summary.PresentDays)
	assert.Equal(t, 2, summary.LateDays)
	assert.Equal(t, 1, summary.LeaveDays)
	assert.Equal(t, 15, summary.AbsentDays)
	assert.Equal(t, "18.5", summary.TotalWorkHours.String())
	assert.Equal(t, "4.63", summary.AverageWorkHours.String())
}

func TestFold_AbsentNeverNegative(t *testing.T) {
	var rows []attendance.Attendance
	for day := 1; day <= 5; day++ {
		rows = append(rows, attendance.Attendance{AttendanceDate: march(day), Status: attendance.StatusPresent})
	}

	summary := Fold("emp-1", 3, 2024, rows, 3)
	assert.Equal(t, 5, summary.PresentDays)
	assert.Equal(t, 0, summary.AbsentDays)
}

func seedDay(repo *fakeAttendanceRepo, date time.Time, employees ...string) {
	for _, emp := range employees {
		repo.put(attendance.Attendance{
			CompanyID:      testCompany,
			EmployeeID:     emp,
			AttendanceDate: date,
			Status:         attendance.StatusPresent,
		})
	}
}

func TestByDate_Paginates(t *testing.T) {
	repo, dir, policies := newFixture()
	var employees []string
	for i := range 25 {
		employees = append(employees, fmt.Sprintf("emp-%02d", i))
	}
	seedDay(repo, march(4), employees...)
	seedDay(repo, march(5), "emp-00")
	agg := NewAggregator(repo, dir, policies)

	rows, total, err := agg.ByDate(context.Background(), testCompany, march(4), nil, 3, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	meta := pagination.NewMeta(3, 10, total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestByDate_NonPositivePageSizeUsesDefault(t *testing.T) {
	repo, dir, policies := newFixture()
	var employees []string
	for i := range 25 {
		employees = append(employees, fmt.Sprintf("emp-%02d", i))
	}
	seedDay(repo, march(4), employees...)
	agg := NewAggregator(repo, dir, policies)
	ctx := context.Background()

	rows, total, err := agg.ByDate(ctx, testCompany, march(4), nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, pagination.DefaultPageSize)
	assert.Equal(t, int64(25), total)

	rows, _, err = agg.ByDate(ctx, testCompany, march(4), nil, 1, -5)
	require.NoError(t, err)
	assert.Len(t, rows, pagination.DefaultPageSize)

	all, err := agg.allByDate(ctx, testCompany, march(4), nil)
	require.NoError(t, err)
	assert.Len(t, all, 25)
}

func TestByDate_DepartmentFilter(t *testing.T) {
	repo, dir, policies := newFixture()
	seedDay(repo, march(4), "emp-a", "emp-b", "emp-c")
	dir.departments["dept-eng"] = []string{"emp-a", "emp-c"}
	agg := NewAggregator(repo, dir, policies)
	ctx := context.Background()

	dept := "dept-eng"
	rows, total, err := agg.ByDate(ctx, testCompany, march(4), &dept, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, r := range rows {
		assert.Contains(t, []string{"emp-a", "emp-c"}, r.EmployeeID)
	}

	empty := "dept-empty"
	rows, total, err = agg.ByDate(ctx, testCompany, march(4), &empty, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)
}

func TestByTeam_DirectReportsOnly(t *testing.T) {
	repo, dir, policies := newFixture()
	seedDay(repo, march(4), "lead", "dev-1", "dev-2", "intern")
	dir.managers["dev-1"] = "lead"
	dir.managers["dev-2"] = "lead"
	dir.managers["intern"] = "dev-1"
	agg := NewAggregator(repo, dir, policies)
	ctx := context.Background()

	rows, total, err := agg.ByTeam(ctx, testCompany, "lead", march(4), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, r := range rows {
		assert.NotEqual(t, "intern", r.EmployeeID)
		assert.NotEqual(t, "lead", r.EmployeeID)
	}

	rows, total, err = agg.ByTeam(ctx, testCompany, "intern", march(4), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)
}
