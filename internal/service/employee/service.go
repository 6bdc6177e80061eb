package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo    employee.EmployeeRepository
	userRepo        user.UserRepository
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	account, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return employee.EmployeeResponse{}, employee.ErrUserNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if account.CompanyID != req.CompanyID {
		return employee.EmployeeResponse{}, employee.ErrUserNotFound
	}

	hasProfile, err := s.employeeRepo.ExistsByUserID(ctx, req.UserID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if hasProfile {
		return employee.EmployeeResponse{}, employee.ErrUserAlreadyHasProfile
	}

	if err := s.checkReferences(ctx, req.CompanyID, "", req.DepartmentID, req.DesignationID, req.ManagerID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate, _ := validator.IsValidDate(req.JoinDate)
	newEmployee := employee.Employee{
		CompanyID:     req.CompanyID,
		UserID:        req.UserID,
		EmployeeCode:  req.EmployeeCode,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		ManagerID:     req.ManagerID,
		DateOfBirth:   parseOptionalDate(req.DateOfBirth),
		Gender:        toGender(req.Gender),
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		JoinDate:      joinDate,
		CreatedBy:     req.ActorID,
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Re-read for the joined department, designation and manager names.
	return s.GetEmployee(ctx, req.CompanyID, created.ID)
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// GetMe implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMe(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		Pagination: pagination.NewMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.CompanyID, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.checkReferences(ctx, req.CompanyID, req.ID, req.DepartmentID, req.DesignationID, req.ManagerID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate, _ := validator.IsValidDate(req.JoinDate)
	resignationDate := parseOptionalDate(req.ResignationDate)
	if resignationDate != nil && resignationDate.Before(joinDate) {
		return employee.EmployeeResponse{}, employee.ErrResignationBeforeJoining
	}

	existing.EmployeeCode = req.EmployeeCode
	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.DepartmentID = req.DepartmentID
	existing.DesignationID = req.DesignationID
	existing.ManagerID = req.ManagerID
	existing.DateOfBirth = parseOptionalDate(req.DateOfBirth)
	existing.Gender = toGender(req.Gender)
	existing.PhoneNumber = req.PhoneNumber
	existing.Address = req.Address
	existing.JoinDate = joinDate
	existing.ResignationDate = resignationDate
	existing.ModifiedBy = &req.ActorID

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.GetEmployee(ctx, req.CompanyID, req.ID)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, companyID, id, actorID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}

	subordinates, err := s.employeeRepo.CountActiveSubordinates(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("failed to count subordinates: %w", err)
	}
	if subordinates > 0 {
		return employee.ErrEmployeeHasSubordinates
	}

	return s.employeeRepo.Deactivate(ctx, companyID, id, actorID)
}

// checkReferences resolves department, designation and manager inside the
// company. selfID is empty on create.
func (s *EmployeeServiceImpl) checkReferences(ctx context.Context, companyID, selfID, departmentID, designationID string, managerID *string) error {
	if managerID != nil && selfID != "" && *managerID == selfID {
		return employee.ErrSelfManager
	}

	if _, err := s.departmentRepo.GetByID(ctx, companyID, departmentID); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return employee.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to get department: %w", err)
	}

	if _, err := s.designationRepo.GetByID(ctx, companyID, designationID); err != nil {
		if errors.Is(err, designation.ErrDesignationNotFound) {
			return employee.ErrDesignationNotFound
		}
		return fmt.Errorf("failed to get designation: %w", err)
	}

	if managerID != nil {
		manager, err := s.employeeRepo.GetByID(ctx, companyID, *managerID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.ErrManagerNotFound
			}
			return fmt.Errorf("failed to get manager: %w", err)
		}
		if !manager.IsActive {
			return employee.ErrManagerNotFound
		}
	}

	return nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &t
}

func toGender(s *string) *employee.Gender {
	if s == nil {
		return nil
	}
	g := employee.Gender(*s)
	return &g
}
