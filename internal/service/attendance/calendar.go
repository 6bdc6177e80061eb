package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// civilDate drops the clock and zone, keeping the calendar date of t.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// localDate is the calendar date of ts as seen in loc.
func localDate(ts time.Time, loc *time.Location) time.Time {
	if loc != nil {
		ts = ts.In(loc)
	}
	return civilDate(ts)
}

func monthBounds(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

func holidaySet(holidays []attendance.Holiday) map[string]struct{} {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format(validator.DateLayout)] = struct{}{}
	}
	return set
}

// IsBusinessDay excludes configured weekend days and holidays.
func IsBusinessDay(date time.Time, cfg attendance.PolicyConfig, holidays []attendance.Holiday) bool {
	if cfg.IsWeekend(date.Weekday()) {
		return false
	}
	_, holiday := holidaySet(holidays)[date.Format(validator.DateLayout)]
	return !holiday
}

// BusinessDays counts the business days of a calendar month.
func BusinessDays(year int, month time.Month, cfg attendance.PolicyConfig, holidays []attendance.Holiday) int {
	first, last := monthBounds(year, month)
	off := holidaySet(holidays)

	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if cfg.IsWeekend(d.Weekday()) {
			continue
		}
		if _, ok := off[d.Format(validator.DateLayout)]; ok {
			continue
		}
		count++
	}
	return count
}
