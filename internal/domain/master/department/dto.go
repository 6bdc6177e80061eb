package department

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	CompanyID          string  `json:"-"` // From JWT
	ActorID            string  `json:"-"`
	BranchID           string  `json:"branch_id"`
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	ParentDepartmentID *string `json:"parent_department_id,omitempty"`
	ManagerID          *string `json:"manager_id,omitempty"`
	Description        *string `json:"description,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	// BranchID
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	} else if !validator.IsValidUUID(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must be a valid UUID",
		})
	}

	errs = append(errs, validateCommon(r.Name, r.Code, r.ParentDepartmentID, r.ManagerID, r.Description)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDepartmentRequest struct {
	ID                 string  `json:"-"`
	CompanyID          string  `json:"-"` // From JWT
	ActorID            string  `json:"-"`
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	ParentDepartmentID *string `json:"parent_department_id,omitempty"`
	ManagerID          *string `json:"manager_id,omitempty"`
	Description        *string `json:"description,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	errs = append(errs, validateCommon(r.Name, r.Code, r.ParentDepartmentID, r.ManagerID, r.Description)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCommon(name, code string, parentID, managerID, description *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	// Name
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

	// Code
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

	if parentID != nil && !validator.IsValidUUID(*parentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "parent_department_id",
			Message: "parent_department_id must be a valid UUID",
		})
	}
	if managerID != nil && !validator.IsValidUUID(*managerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id must be a valid UUID",
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

type DepartmentFilter struct {
	CompanyID string
	BranchID  *string
	Page      int
	PageSize  int
}

func (f *DepartmentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.BranchID != nil && !validator.IsValidUUID(*f.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must be a valid UUID",
		})
	}
	f.Page, f.PageSize = pagination.Normalize(f.Page, f.PageSize)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DepartmentResponse struct {
	ID                   string  `json:"id"`
	CompanyID            string  `json:"company_id"`
	BranchID             string  `json:"branch_id"`
	BranchName           *string `json:"branch_name,omitempty"`
	Name                 string  `json:"name"`
	Code                 string  `json:"code"`
	ParentDepartmentID   *string `json:"parent_department_id,omitempty"`
	ParentDepartmentName *string `json:"parent_department_name,omitempty"`
	ManagerID            *string `json:"manager_id,omitempty"`
	ManagerName          *string `json:"manager_name,omitempty"`
	Description          *string `json:"description,omitempty"`
	EmployeeCount        int64   `json:"employee_count"`
	IsActive             bool    `json:"is_active"`
	CreatedAt            string  `json:"created_at"`
}

type ListDepartmentResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Pagination  pagination.Meta      `json:"pagination"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                   d.ID,
		CompanyID:            d.CompanyID,
		BranchID:             d.BranchID,
		BranchName:           d.BranchName,
		Name:                 d.Name,
		Code:                 d.Code,
		ParentDepartmentID:   d.ParentDepartmentID,
		ParentDepartmentName: d.ParentDepartmentName,
		ManagerID:            d.ManagerID,
		ManagerName:          d.ManagerName,
		Description:          d.Description,
		EmployeeCount:        d.EmployeeCount,
		IsActive:             d.IsActive,
		CreatedAt:            d.CreatedAt.Format(time.RFC3339),
	}
}
