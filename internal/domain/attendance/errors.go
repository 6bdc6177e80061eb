package attendance

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrAlreadyCheckedIn      = apperror.New(apperror.KindConflict, "attendance already recorded for today")
	ErrNoOpenSession         = apperror.New(apperror.KindInvalidState, "you have not checked in today")
	ErrAlreadyCheckedOut     = apperror.New(apperror.KindInvalidState, "you have already checked out today")
	ErrCheckOutBeforeCheckIn = apperror.New(apperror.KindInvalidState, "check-out time must be after check-in time")
)
