package branch

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrBranchNotFound  = apperror.New(apperror.KindNotFound, "branch not found")
	ErrInvalidTimezone = apperror.New(apperror.KindInvalidState, "branch timezone is not a valid IANA zone")
)
