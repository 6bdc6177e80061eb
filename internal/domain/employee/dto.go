package employee

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	CompanyID     string  `json:"-"`
	ActorID       string  `json:"-"`
	UserID        string  `json:"user_id"`
	EmployeeCode  string  `json:"employee_code"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	DepartmentID  string  `json:"department_id"`
	DesignationID string  `json:"designation_id"`
	ManagerID     *string `json:"manager_id,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Address       *string `json:"address,omitempty"`
	JoinDate      string  `json:"join_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	// UserID
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	validateProfile(&errs, profileFields{
		employeeCode:  r.EmployeeCode,
		firstName:     r.FirstName,
		lastName:      r.LastName,
		departmentID:  r.DepartmentID,
		designationID: r.DesignationID,
		managerID:     r.ManagerID,
		dateOfBirth:   r.DateOfBirth,
		gender:        r.Gender,
		phoneNumber:   r.PhoneNumber,
		address:       r.Address,
		joinDate:      r.JoinDate,
	})

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID              string  `json:"-"`
	CompanyID       string  `json:"-"`
	ActorID         string  `json:"-"`
	EmployeeCode    string  `json:"employee_code"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	DepartmentID    string  `json:"department_id"`
	DesignationID   string  `json:"designation_id"`
	ManagerID       *string `json:"manager_id,omitempty"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
	Address         *string `json:"address,omitempty"`
	JoinDate        string  `json:"join_date"`
	ResignationDate *string `json:"resignation_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	validateProfile(&errs, profileFields{
		employeeCode:  r.EmployeeCode,
		firstName:     r.FirstName,
		lastName:      r.LastName,
		departmentID:  r.DepartmentID,
		designationID: r.DesignationID,
		managerID:     r.ManagerID,
		dateOfBirth:   r.DateOfBirth,
		gender:        r.Gender,
		phoneNumber:   r.PhoneNumber,
		address:       r.Address,
		joinDate:      r.JoinDate,
	})

	if r.ResignationDate != nil {
		if _, ok := validator.IsValidDate(*r.ResignationDate); !ok {
			errs.Add("resignation_date", "resignation_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type profileFields struct {
	employeeCode  string
	firstName     string
	lastName      string
	departmentID  string
	designationID string
	managerID     *string
	dateOfBirth   *string
	gender        *string
	phoneNumber   *string
	address       *string
	joinDate      string
}

func validateProfile(errs *validator.ValidationErrors, f profileFields) {
	// EmployeeCode
	if validator.IsEmpty(f.employeeCode) {
		errs.Add("employee_code", "employee_code is required")
	} else if !validator.IsValidCode(f.employeeCode) {
		errs.Add("employee_code", "employee_code must be 1-20 uppercase letters, digits, '-' or '_'")
	}

	// Names
	if validator.IsEmpty(f.firstName) {
		errs.Add("first_name", "first_name is required")
	} else if len(f.firstName) > 100 {
		errs.Add("first_name", "first_name must not exceed 100 characters")
	}
	if len(f.lastName) > 100 {
		errs.Add("last_name", "last_name must not exceed 100 characters")
	}

	// References
	if !validator.IsValidUUID(f.departmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if !validator.IsValidUUID(f.designationID) {
		errs.Add("designation_id", "designation_id must be a valid UUID")
	}
	if f.managerID != nil && !validator.IsValidUUID(*f.managerID) {
		errs.Add("manager_id", "manager_id must be a valid UUID")
	}

	// Dates
	joinDate, joinOK := validator.IsValidDate(f.joinDate)
	if validator.IsEmpty(f.joinDate) {
		errs.Add("join_date", "join_date is required")
	} else if !joinOK {
		errs.Add("join_date", "join_date must be in YYYY-MM-DD format")
	}
	if f.dateOfBirth != nil {
		dob, ok := validator.IsValidDate(*f.dateOfBirth)
		if !ok {
			errs.Add("date_of_birth", "date_of_birth must be in YYYY-MM-DD format")
		} else if joinOK && !dob.Before(joinDate) {
			errs.Add("date_of_birth", "date_of_birth must be before join_date")
		}
	}

	// Contact
	if f.gender != nil && !Gender(*f.gender).IsValid() {
		errs.Add("gender", "gender must be one of Male, Female, Other")
	}
	if f.phoneNumber != nil && !validator.IsValidPhoneNumber(*f.phoneNumber) {
		errs.Add("phone_number", "phone_number must be 7-15 digits with an optional leading '+'")
	}
	if f.address != nil && len(*f.address) > 500 {
		errs.Add("address", "address must not exceed 500 characters")
	}
}

type EmployeeFilter struct {
	CompanyID       string
	DepartmentID    *string
	Search          *string
	IncludeInactive bool
	Page            int
	PageSize        int
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.DepartmentID != nil && !validator.IsValidUUID(*f.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if f.Search != nil && len(*f.Search) > 100 {
		errs.Add("search", "search must not exceed 100 characters")
	}

	f.Page, f.PageSize = pagination.Normalize(f.Page, f.PageSize)
	return errs.Err()
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Email            *string `json:"email,omitempty"`
	EmployeeCode     string  `json:"employee_code"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	FullName         string  `json:"full_name"`
	DepartmentID     string  `json:"department_id"`
	DepartmentName   *string `json:"department_name,omitempty"`
	DepartmentCode   *string `json:"department_code,omitempty"`
	DesignationID    string  `json:"designation_id"`
	DesignationName  *string `json:"designation_name,omitempty"`
	DesignationLevel *int    `json:"designation_level,omitempty"`
	ManagerID        *string `json:"manager_id,omitempty"`
	ManagerName      *string `json:"manager_name,omitempty"`
	DateOfBirth      *string `json:"date_of_birth,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Address          *string `json:"address,omitempty"`
	JoinDate         string  `json:"join_date"`
	ResignationDate  *string `json:"resignation_date,omitempty"`
	IsActive         bool    `json:"is_active"`
	CreatedAt        string  `json:"created_at"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Pagination pagination.Meta    `json:"pagination"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		Email:            e.Email,
		EmployeeCode:     e.EmployeeCode,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		FullName:         e.FullName(),
		DepartmentID:     e.DepartmentID,
		DepartmentName:   e.DepartmentName,
		DepartmentCode:   e.DepartmentCode,
		DesignationID:    e.DesignationID,
		DesignationName:  e.DesignationName,
		DesignationLevel: e.DesignationLevel,
		ManagerID:        e.ManagerID,
		ManagerName:      e.ManagerName,
		PhoneNumber:      e.PhoneNumber,
		Address:          e.Address,
		JoinDate:         e.JoinDate.Format(validator.DateLayout),
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
	}
	if e.DateOfBirth != nil {
		s := e.DateOfBirth.Format(validator.DateLayout)
		resp.DateOfBirth = &s
	}
	if e.Gender != nil {
		s := string(*e.Gender)
		resp.Gender = &s
	}
	if e.ResignationDate != nil {
		s := e.ResignationDate.Format(validator.DateLayout)
		resp.ResignationDate = &s
	}
	return resp
}
