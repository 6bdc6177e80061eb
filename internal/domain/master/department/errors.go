package department

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrDepartmentNotFound       = apperror.New(apperror.KindNotFound, "department not found")
	ErrParentDepartmentNotFound = apperror.New(apperror.KindNotFound, "parent department not found")
	ErrBranchNotFound           = apperror.New(apperror.KindNotFound, "branch not found")
	ErrManagerNotFound          = apperror.New(apperror.KindNotFound, "manager not found")
	ErrDepartmentCodeExists     = apperror.New(apperror.KindConflict, "department with this code already exists")
	ErrDepartmentHasEmployees   = apperror.New(apperror.KindConflict, "department still has active employees")
	ErrDepartmentHasChildren    = apperror.New(apperror.KindConflict, "department still has child departments")
	ErrSelfParent               = apperror.New(apperror.KindInvalidState, "department cannot be its own parent")
	ErrParentCycle              = apperror.New(apperror.KindInvalidState, "parent department would create a cycle")
)
