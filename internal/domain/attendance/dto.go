package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const maxNotesLength = 500

// ========================================
// LEDGER DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string  `json:"-"`
	CompanyID  string  `json:"-"`
	ActorID    string  `json:"-"`
	Notes      *string `json:"notes"`
}

func (r *CheckInRequest) Validate() error {
	return validateLedgerRequest(r.EmployeeID, r.ActorID, r.Notes)
}

type CheckOutRequest struct {
	EmployeeID string  `json:"-"`
	ActorID    string  `json:"-"`
	Notes      *string `json:"notes"`
}

func (r *CheckOutRequest) Validate() error {
	return validateLedgerRequest(r.EmployeeID, r.ActorID, r.Notes)
}

func validateLedgerRequest(employeeID, actorID string, notes *string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(actorID) {
		errs.Add("actor_id", "actor_id is required")
	}
	if notes != nil && len(*notes) > maxNotesLength {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID                string           `json:"id"`
	EmployeeID        string           `json:"employee_id"`
	EmployeeName      *string          `json:"employee_name,omitempty"`
	EmployeeCode      *string          `json:"employee_code,omitempty"`
	DepartmentName    *string          `json:"department_name,omitempty"`
	AttendanceDate    string           `json:"attendance_date"`
	CheckInTime       *string          `json:"check_in_time"`
	CheckOutTime      *string          `json:"check_out_time"`
	Status            string           `json:"status"`
	WorkHours         *decimal.Decimal `json:"work_hours"`
	LateMinutes       int              `json:"late_minutes"`
	EarlyLeaveMinutes int              `json:"early_leave_minutes"`
	Notes             *string          `json:"notes,omitempty"`
	CreatedAt         string           `json:"created_at"`
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Pagination  pagination.Meta      `json:"pagination"`
}

// ========================================
// QUERY DTOs
// ========================================

type HistoryQuery struct {
	EmployeeID string
	StartDate  *string
	EndDate    *string
	Page       int
	PageSize   int
}

func (q *HistoryQuery) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var okStart, okEnd bool
	if q.StartDate != nil {
		if start, okStart = validator.IsValidDate(*q.StartDate); !okStart {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if q.EndDate != nil {
		if end, okEnd = validator.IsValidDate(*q.EndDate); !okEnd {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	q.Page, q.PageSize = pagination.Normalize(q.Page, q.PageSize)
	return errs.Err()
}

// SummaryQuery months are 1-12. Zero month and year mean the current local month.
type SummaryQuery struct {
	EmployeeID string
	Month      int
	Year       int
}

func (q *SummaryQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Month < 0 || q.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	if q.Year != 0 && (q.Year < 1970 || q.Year > 9999) {
		errs.Add("year", "year must be between 1970 and 9999")
	}
	if (q.Month == 0) != (q.Year == 0) {
		errs.Add("month", "month and year must be provided together")
	}

	return errs.Err()
}

type SummaryResponse struct {
	EmployeeID       string          `json:"employee_id"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	TotalDays        int             `json:"total_days"`
	PresentDays      int             `json:"present_days"`
	LateDays         int             `json:"late_days"`
	AbsentDays       int             `json:"absent_days"`
	LeaveDays        int             `json:"leave_days"`
	TotalWorkHours   decimal.Decimal `json:"total_work_hours"`
	AverageWorkHours decimal.Decimal `json:"average_work_hours"`
}

type ByDateQuery struct {
	CompanyID    string
	Date         string
	DepartmentID *string
	Page         int
	PageSize     int
}

func (q *ByDateQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(q.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if q.DepartmentID != nil && !validator.IsValidUUID(*q.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}

	q.Page, q.PageSize = pagination.Normalize(q.Page, q.PageSize)
	return errs.Err()
}

// TeamQuery lists the manager's direct reports. An empty Date means today.
type TeamQuery struct {
	CompanyID string
	ManagerID string
	Date      string
	Page      int
	PageSize  int
}

func (q *TeamQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.ManagerID) {
		errs.Add("manager_id", "manager_id is required")
	}
	if q.Date != "" {
		if _, ok := validator.IsValidDate(q.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	q.Page, q.PageSize = pagination.Normalize(q.Page, q.PageSize)
	return errs.Err()
}

// ToResponse renders times in RFC 3339 and dates as YYYY-MM-DD.
func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		EmployeeCode:      a.EmployeeCode,
		DepartmentName:    a.DepartmentName,
		AttendanceDate:    a.AttendanceDate.Format(validator.DateLayout),
		Status:            string(a.Status),
		WorkHours:         a.WorkHours,
		LateMinutes:       a.LateMinutes,
		EarlyLeaveMinutes: a.EarlyLeaveMinutes,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
	if a.CheckInTime != nil {
		s := a.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &s
	}
	if a.CheckOutTime != nil {
		s := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	return resp
}
