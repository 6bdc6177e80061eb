package attendance

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"
)

// CountsAsPresent reports whether the employee was at work on the day.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// Attendance is one ledger row per employee and calendar date.
type Attendance struct {
	ID                string
	CompanyID         string
	EmployeeID        string
	AttendanceDate    time.Time
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	Status            Status
	WorkHours         *decimal.Decimal
	LateMinutes       int
	EarlyLeaveMinutes int
	Notes             *string
	CreatedBy         string
	CreatedAt         time.Time
	ModifiedBy        *string
	ModifiedAt        *time.Time

	// Joined
	EmployeeName   *string
	EmployeeCode   *string
	DepartmentName *string
}

// IsOpen is true between check-in and check-out.
func (a Attendance) IsOpen() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}

// PolicyConfig holds the attendance rules effective for a branch at a date.
// WorkStart and WorkEnd are offsets from local midnight.
type PolicyConfig struct {
	WorkStart               time.Duration
	WorkEnd                 time.Duration
	StandardWorkHours       decimal.Decimal
	LateThreshold           time.Duration
	EarlyDepartureThreshold time.Duration
	WeekendDays             []time.Weekday
	Location                *time.Location
}

func (c PolicyConfig) IsWeekend(day time.Weekday) bool {
	return slices.Contains(c.WeekendDays, day)
}

// Holiday is company wide when BranchID is nil.
type Holiday struct {
	ID        string
	CompanyID string
	BranchID  *string
	Date      time.Time
	Name      string
}

// Summary is the monthly fold of an employee's ledger rows.
type Summary struct {
	EmployeeID       string
	Month            int
	Year             int
	TotalDays        int
	PresentDays      int
	LateDays         int
	AbsentDays       int
	LeaveDays        int
	TotalWorkHours   decimal.Decimal
	AverageWorkHours decimal.Decimal
}
