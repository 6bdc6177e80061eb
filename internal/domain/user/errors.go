package user

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound            = apperror.New(apperror.KindNotFound, "user not found")
	ErrInsufficientPermissions = apperror.New(apperror.KindForbidden, "insufficient permissions")
	ErrEmployeeProfileRequired = apperror.New(apperror.KindForbidden, "an employee profile is required for this action")
	ErrCompanyIDRequired       = apperror.New(apperror.KindUnauthorized, "company ID is required")
)
