package employee

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound         = apperror.New(apperror.KindNotFound, "employee not found")
	ErrManagerNotFound          = apperror.New(apperror.KindNotFound, "manager not found")
	ErrDepartmentNotFound       = apperror.New(apperror.KindNotFound, "department not found")
	ErrDesignationNotFound      = apperror.New(apperror.KindNotFound, "designation not found")
	ErrUserNotFound             = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmployeeCodeExists       = apperror.New(apperror.KindConflict, "employee code already exists")
	ErrUserAlreadyHasProfile    = apperror.New(apperror.KindConflict, "user already has an employee profile")
	ErrEmployeeHasSubordinates  = apperror.New(apperror.KindConflict, "employee still manages other employees")
	ErrSelfManager              = apperror.New(apperror.KindInvalidState, "employee cannot be their own manager")
	ErrEmployeeAlreadyInactive  = apperror.New(apperror.KindInvalidState, "employee is already inactive")
	ErrResignationBeforeJoining = apperror.New(apperror.KindInvalidState, "resignation date cannot be before join date")
)
