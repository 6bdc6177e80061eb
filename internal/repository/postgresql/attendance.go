package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.company_id, a.employee_id, a.attendance_date, a.check_in_time, a.check_out_time,
	a.status, a.work_hours, a.late_minutes, a.early_leave_minutes, a.notes,
	a.created_by, a.created_at, a.modified_by, a.modified_at`

const attendanceJoinedColumns = attendanceColumns + `,
	NULLIF(TRIM(e.first_name || ' ' || e.last_name), ''), e.employee_code, d.name`

const attendanceJoins = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
	LEFT JOIN departments d ON d.id = e.department_id`

func scanAttendance(row pgx.Row, joined bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	var workHours decimal.NullDecimal
	dest := []any{
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.AttendanceDate, &att.CheckInTime, &att.CheckOutTime,
		&att.Status, &workHours, &att.LateMinutes, &att.EarlyLeaveMinutes, &att.Notes,
		&att.CreatedBy, &att.CreatedAt, &att.ModifiedBy, &att.ModifiedAt,
	}
	if joined {
		dest = append(dest, &att.EmployeeName, &att.EmployeeCode, &att.DepartmentName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	if workHours.Valid {
		att.WorkHours = &workHours.Decimal
	}
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()
	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return result, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances AS a (
			company_id, employee_id, attendance_date, check_in_time, status,
			late_minutes, early_leave_minutes, notes, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		a.CompanyID,
		a.EmployeeID,
		a.AttendanceDate,
		a.CheckInTime,
		a.Status,
		a.LateMinutes,
		a.EarlyLeaveMinutes,
		a.Notes,
		a.CreatedBy,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, true, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceJoinedColumns + attendanceJoins + `
		WHERE a.employee_id = $1 AND a.attendance_date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Close implements attendance.AttendanceRepository.
func (r *attendanceRepository) Close(ctx context.Context, a attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $2,
			status = $3,
			work_hours = $4,
			early_leave_minutes = $5,
			notes = COALESCE($6, notes),
			modified_by = $7,
			modified_at = $8
		WHERE id = $1 AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query,
		a.ID,
		a.CheckOutTime,
		a.Status,
		a.WorkHours,
		a.EarlyLeaveMinutes,
		a.Notes,
		a.ModifiedBy,
		a.ModifiedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to close attendance: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "a.employee_id = $1"
	args := []interface{}{filter.EmployeeID}
	argIdx := 2

	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND a.attendance_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND a.attendance_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances a WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	page, pageSize := pagination.Normalize(filter.Page, filter.PageSize)
	query := `SELECT ` + attendanceJoinedColumns + attendanceJoins + `
		WHERE ` + where + `
		ORDER BY a.attendance_date DESC, a.id
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, pagination.Offset(page, pageSize))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	result, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// ListByEmployeeInRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceJoinedColumns + attendanceJoins + `
		WHERE a.employee_id = $1 AND a.attendance_date BETWEEN $2 AND $3
		ORDER BY a.attendance_date`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances in range: %w", err)
	}
	return collectAttendances(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, filter attendance.DateFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "a.company_id = $1 AND a.attendance_date = $2"
	args := []interface{}{filter.CompanyID, filter.Date}
	argIdx := 3

	if filter.EmployeeIDs != nil {
		where += fmt.Sprintf(" AND a.employee_id = ANY($%d)", argIdx)
		args = append(args, filter.EmployeeIDs)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances a WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// PageSize <= 0 returns every row (exports).
	limit := ""
	if filter.PageSize > 0 {
		page, pageSize := pagination.Normalize(filter.Page, filter.PageSize)
		limit = fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, pageSize, pagination.Offset(page, pageSize))
	}

	query := `SELECT ` + attendanceJoinedColumns + attendanceJoins + `
		WHERE ` + where + `
		ORDER BY e.employee_code, a.id` + limit

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	result, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}
