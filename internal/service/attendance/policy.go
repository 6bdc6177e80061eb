package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// DefaultPolicyConfig applies when no attendance settings are effective for a branch.
func DefaultPolicyConfig() attendance.PolicyConfig {
	return attendance.PolicyConfig{
		WorkStart:               9 * time.Hour,
		WorkEnd:                 17 * time.Hour,
		StandardWorkHours:       decimal.NewFromInt(8),
		LateThreshold:           15 * time.Minute,
		EarlyDepartureThreshold: 15 * time.Minute,
		WeekendDays:             []time.Weekday{time.Saturday, time.Sunday},
		Location:                time.UTC,
	}
}

// timeOfDay is the wall-clock offset from local midnight.
func timeOfDay(ts time.Time, loc *time.Location) time.Duration {
	if loc != nil {
		ts = ts.In(loc)
	}
	h, m, s := ts.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(ts.Nanosecond())
}

// ClassifyCheckIn is Present up to and including WorkStart+LateThreshold, Late after.
func ClassifyCheckIn(ts time.Time, cfg attendance.PolicyConfig) attendance.Status {
	if timeOfDay(ts, cfg.Location) <= cfg.WorkStart+cfg.LateThreshold {
		return attendance.StatusPresent
	}
	return attendance.StatusLate
}

// LateMinutes counts whole minutes after WorkStart for a Late check-in.
func LateMinutes(ts time.Time, cfg attendance.PolicyConfig) int {
	if ClassifyCheckIn(ts, cfg) != attendance.StatusLate {
		return 0
	}
	return int((timeOfDay(ts, cfg.Location) - cfg.WorkStart) / time.Minute)
}

// EarlyLeaveMinutes counts whole minutes before WorkEnd when the employee left
// earlier than WorkEnd-EarlyDepartureThreshold.
func EarlyLeaveMinutes(checkOut time.Time, cfg attendance.PolicyConfig) int {
	tod := timeOfDay(checkOut, cfg.Location)
	if tod >= cfg.WorkEnd-cfg.EarlyDepartureThreshold {
		return 0
	}
	return int((cfg.WorkEnd - tod) / time.Minute)
}

// ComputeWorkHours is the elapsed wall-clock time in hours, rounded to 2 places.
func ComputeWorkHours(checkIn, checkOut time.Time) decimal.Decimal {
	elapsed := checkOut.Sub(checkIn)
	if elapsed <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(elapsed)).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2)
}

// RefineStatusOnCheckOut downgrades Present and Late to HalfDay below half the standard hours.
func RefineStatusOnCheckOut(status attendance.Status, workHours decimal.Decimal, cfg attendance.PolicyConfig) attendance.Status {
	if status != attendance.StatusPresent && status != attendance.StatusLate {
		return status
	}
	if workHours.LessThan(cfg.StandardWorkHours.Div(two)) {
		return attendance.StatusHalfDay
	}
	return status
}
