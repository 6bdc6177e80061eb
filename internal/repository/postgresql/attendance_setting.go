package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type attendanceSettingRepository struct {
	db       *database.DB
	branches branch.BranchRepository
}

// NewAttendanceSettingRepository reads attendance_settings and holidays.
func NewAttendanceSettingRepository(db *database.DB, branches branch.BranchRepository) attendance.PolicyConfigStore {
	return &attendanceSettingRepository{db: db, branches: branches}
}

// GetBranchLocation implements attendance.PolicyConfigStore.
func (r *attendanceSettingRepository) GetBranchLocation(ctx context.Context, branchID string) (*time.Location, error) {
	tz, err := r.branches.GetTimezone(ctx, branchID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", branch.ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// GetEffectiveConfig implements attendance.PolicyConfigStore.
// Branch rows take precedence over company-wide rows; the latest effective_from wins.
func (r *attendanceSettingRepository) GetEffectiveConfig(ctx context.Context, branchID string, date time.Time) (*attendance.PolicyConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.work_start_time, s.work_end_time, s.standard_work_hours,
			   s.late_threshold_minutes, s.early_departure_minutes, s.weekend_days
		FROM attendance_settings s
		JOIN branches b ON b.company_id = s.company_id
		WHERE b.id = $1
		  AND (s.branch_id = b.id OR s.branch_id IS NULL)
		  AND s.effective_from <= $2
		ORDER BY (s.branch_id IS NULL), s.effective_from DESC
		LIMIT 1
	`

	var (
		start, end    pgtype.Time
		standard      decimal.Decimal
		late, early   int
		weekendValues []int32
	)
	err := q.QueryRow(ctx, query, branchID, date).Scan(&start, &end, &standard, &late, &early, &weekendValues)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	weekend := make([]time.Weekday, 0, len(weekendValues))
	for _, d := range weekendValues {
		weekend = append(weekend, time.Weekday(d))
	}

	return &attendance.PolicyConfig{
		WorkStart:               time.Duration(start.Microseconds) * time.Microsecond,
		WorkEnd:                 time.Duration(end.Microseconds) * time.Microsecond,
		StandardWorkHours:       standard,
		LateThreshold:           time.Duration(late) * time.Minute,
		EarlyDepartureThreshold: time.Duration(early) * time.Minute,
		WeekendDays:             weekend,
	}, nil
}

// ListHolidays implements attendance.PolicyConfigStore.
func (r *attendanceSettingRepository) ListHolidays(ctx context.Context, branchID string, from, to time.Time) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.company_id, h.branch_id, h.holiday_date, h.name
		FROM holidays h
		JOIN branches b ON b.company_id = h.company_id
		WHERE b.id = $1
		  AND (h.branch_id = b.id OR h.branch_id IS NULL)
		  AND h.holiday_date BETWEEN $2 AND $3
		ORDER BY h.holiday_date
	`

	rows, err := q.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []attendance.Holiday
	for rows.Next() {
		var h attendance.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.BranchID, &h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}
