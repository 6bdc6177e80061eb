package designation

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

const maxLevel = 20

type CreateDesignationRequest struct {
	CompanyID   string  `json:"-"` // From JWT
	ActorID     string  `json:"-"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Level       int     `json:"level"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateDesignationRequest) Validate() error {
	errs := validateCommon(r.Name, r.Code, r.Level, r.Description)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDesignationRequest struct {
	ID          string  `json:"-"`
	CompanyID   string  `json:"-"` // From JWT
	ActorID     string  `json:"-"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Level       int     `json:"level"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	errs = append(errs, validateCommon(r.Name, r.Code, r.Level, r.Description)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCommon(name, code string, level int, description *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidCode(code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 1-20 uppercase letters, digits, '-' or '_'",
		})
	}

	if level < 1 || level > maxLevel {
		errs = append(errs, validator.ValidationError{
			Field:   "level",
			Message: "level must be between 1 and 20",
		})
	}

	if description != nil && len(*description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	return errs
}

type DesignationResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Level         int     `json:"level"`
	Description   *string `json:"description,omitempty"`
	EmployeeCount int64   `json:"employee_count"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
}

type ListDesignationResponse struct {
	Designations []DesignationResponse `json:"designations"`
	Pagination   pagination.Meta       `json:"pagination"`
}

func ToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:            d.ID,
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		Code:          d.Code,
		Level:         d.Level,
		Description:   d.Description,
		EmployeeCount: d.EmployeeCount,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}
