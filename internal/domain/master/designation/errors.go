package designation

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrDesignationNotFound     = apperror.New(apperror.KindNotFound, "designation not found")
	ErrDesignationCodeExists   = apperror.New(apperror.KindConflict, "designation with this code already exists")
	ErrDesignationHasEmployees = apperror.New(apperror.KindConflict, "designation is still assigned to active employees")
)
