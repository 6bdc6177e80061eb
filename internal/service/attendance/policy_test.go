package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func TestClassifyCheckIn(t *testing.T) {
	cfg := DefaultPolicyConfig()

	tests := []struct {
		name string
		ts   time.Time
		want attendance.Status
	}{
		{"early", at(8, 30), attendance.StatusPresent},
		{"within threshold", at(9, 10), attendance.StatusPresent},
		{"threshold boundary", at(9, 15), attendance.StatusPresent},
		{"just after threshold", at(9, 15).Add(time.Second), attendance.StatusLate},
		{"late", at(10, 0), attendance.StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCheckIn(tt.ts, cfg))
		})
	}
}

func TestClassifyCheckIn_UsesBranchLocation(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.Location = time.FixedZone("WIB", 7*60*60)

	// 02:10 UTC is 09:10 in UTC+7.
	assert.Equal(t, attendance.StatusPresent, ClassifyCheckIn(at(2, 10), cfg))
	assert.Equal(t, attendance.StatusLate, ClassifyCheckIn(at(9, 10), cfg))
}

func TestLateMinutes(t *testing.T) {
	cfg := DefaultPolicyConfig()
	assert.Equal(t, 0, LateMinutes(at(9, 10), cfg))
	assert.Equal(t, 40, LateMinutes(at(9, 40), cfg))
}

func TestEarlyLeaveMinutes(t *testing.T) {
	cfg := DefaultPolicyConfig()
	assert.Equal(t, 0, EarlyLeaveMinutes(at(17, 10), cfg))
	assert.Equal(t, 0, EarlyLeaveMinutes(at(16, 50), cfg))
	assert.Equal(t, 30, EarlyLeaveMinutes(at(16, 30), cfg))
}

func TestComputeWorkHours(t *testing.T) {
	assert.True(t, decimal.NewFromInt(8).Equal(ComputeWorkHours(at(9, 10), at(17, 10))))
	assert.True(t, decimal.RequireFromString("8.17").Equal(ComputeWorkHours(at(9, 0), at(17, 10))))
	assert.True(t, decimal.Zero.Equal(ComputeWorkHours(at(17, 0), at(9, 0))))
}

func TestComputeWorkHours_Monotonic(t *testing.T) {
	checkIn := at(9, 0)
	prev := decimal.Zero
	for minutes := 1; minutes <= 12*60; minutes += 7 {
		got := ComputeWorkHours(checkIn, checkIn.Add(time.Duration(minutes)*time.Minute))
		assert.False(t, got.LessThan(prev), "work hours decreased at %d minutes", minutes)
		prev = got
	}
}

func TestRefineStatusOnCheckOut(t *testing.T) {
	cfg := DefaultPolicyConfig()
	half := decimal.RequireFromString("3.99")
	full := decimal.NewFromInt(4)

	assert.Equal(t, attendance.StatusHalfDay, RefineStatusOnCheckOut(attendance.StatusPresent, half, cfg))
	assert.Equal(t, attendance.StatusHalfDay, RefineStatusOnCheckOut(attendance.StatusLate, half, cfg))
	assert.Equal(t, attendance.StatusPresent, RefineStatusOnCheckOut(attendance.StatusPresent, full, cfg))
	assert.Equal(t, attendance.StatusLate, RefineStatusOnCheckOut(attendance.StatusLate, full, cfg))
	assert.Equal(t, attendance.StatusLeave, RefineStatusOnCheckOut(attendance.StatusLeave, half, cfg))
}
