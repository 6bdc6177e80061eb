package master

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pagination"
)

type MasterService interface {
	// Branch operations
	GetBranch(ctx context.Context, companyID, id string) (branch.BranchResponse, error)
	ListBranches(ctx context.Context, companyID string) ([]branch.BranchResponse, error)
	GetBranchLocation(ctx context.Context, companyID, id string) (*time.Location, error)

	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, companyID, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, filter department.DepartmentFilter) (department.ListDepartmentResponse, error)
	ListDepartmentsByBranch(ctx context.Context, companyID, branchID string) ([]department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, companyID, id string) error

	// Designation operations
	CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error)
	GetDesignation(ctx context.Context, companyID, id string) (designation.DesignationResponse, error)
	ListDesignations(ctx context.Context, companyID string, page, pageSize int) (designation.ListDesignationResponse, error)
	UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error)
	DeleteDesignation(ctx context.Context, companyID, id string) error
}

type masterServiceImpl struct {
	branchRepo      branch.BranchRepository
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
	employeeRepo    employee.EmployeeRepository
}

func NewMasterService(
	branchRepo branch.BranchRepository,
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
	employeeRepo employee.EmployeeRepository,
) MasterService {
	return &masterServiceImpl{
		branchRepo:      branchRepo,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
		employeeRepo:    employeeRepo,
	}
}

// ==================== BRANCH OPERATIONS ====================

func (s *masterServiceImpl) GetBranch(ctx context.Context, companyID, id string) (branch.BranchResponse, error) {
	b, err := s.branchRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(b), nil
}

func (s *masterServiceImpl) ListBranches(ctx context.Context, companyID string) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, branch.ToResponse(b))
	}
	return responses, nil
}

// GetBranchLocation resolves the branch's IANA timezone.
func (s *masterServiceImpl) GetBranchLocation(ctx context.Context, companyID, id string) (*time.Location, error) {
	b, err := s.branchRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, branch.ErrInvalidTimezone
	}
	return loc, nil
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	if _, err := s.branchRepo.GetByID(ctx, req.CompanyID, req.BranchID); err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return department.DepartmentResponse{}, department.ErrBranchNotFound
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to get branch: %w", err)
	}
	if err := s.checkDepartmentRefs(ctx, req.CompanyID, "", req.ParentDepartmentID, req.ManagerID); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		CompanyID:          req.CompanyID,
		BranchID:           req.BranchID,
		Name:               req.Name,
		Code:               req.Code,
		ParentDepartmentID: req.ParentDepartmentID,
		ManagerID:          req.ManagerID,
		Description:        req.Description,
		CreatedBy:          req.ActorID,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return s.GetDepartment(ctx, req.CompanyID, created.ID)
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, companyID, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(d), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context, filter department.DepartmentFilter) (department.ListDepartmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return department.ListDepartmentResponse{}, err
	}

	departments, total, err := s.departmentRepo.List(ctx, filter)
	if err != nil {
		return department.ListDepartmentResponse{}, err
	}

	return department.ListDepartmentResponse{
		Departments: toDepartmentResponses(departments),
		Pagination:  pagination.NewMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *masterServiceImpl) ListDepartmentsByBranch(ctx context.Context, companyID, branchID string) ([]department.DepartmentResponse, error) {
	if _, err := s.branchRepo.GetByID(ctx, companyID, branchID); err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return nil, department.ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}

	departments, err := s.departmentRepo.ListByBranch(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponses(departments), nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	existing, err := s.departmentRepo.GetByID(ctx, req.CompanyID, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if err := s.checkDepartmentRefs(ctx, req.CompanyID, req.ID, req.ParentDepartmentID, req.ManagerID); err != nil {
		return department.DepartmentResponse{}, err
	}

	existing.Name = req.Name
	existing.Code = req.Code
	existing.ParentDepartmentID = req.ParentDepartmentID
	existing.ManagerID = req.ManagerID
	existing.Description = req.Description
	existing.ModifiedBy = &req.ActorID
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.departmentRepo.Update(ctx, existing); err != nil {
		return department.DepartmentResponse{}, err
	}

	return s.GetDepartment(ctx, req.CompanyID, req.ID)
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, companyID, id string) error {
	if _, err := s.departmentRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}

	employees, err := s.departmentRepo.CountActiveEmployees(ctx, id)
	if err != nil {
		return err
	}
	if employees > 0 {
		return department.ErrDepartmentHasEmployees
	}

	children, err := s.departmentRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return department.ErrDepartmentHasChildren
	}

	return s.departmentRepo.Delete(ctx, companyID, id)
}

// checkDepartmentRefs validates the parent and manager links. selfID is empty
// on create, where no cycle is possible.
func (s *masterServiceImpl) checkDepartmentRefs(ctx context.Context, companyID, selfID string, parentID, managerID *string) error {
	if parentID != nil {
		if *parentID == selfID {
			return department.ErrSelfParent
		}
		if _, err := s.departmentRepo.GetByID(ctx, companyID, *parentID); err != nil {
			if errors.Is(err, department.ErrDepartmentNotFound) {
				return department.ErrParentDepartmentNotFound
			}
			return fmt.Errorf("failed to get parent department: %w", err)
		}
		if selfID != "" {
			ancestors, err := s.departmentRepo.GetAncestorIDs(ctx, *parentID)
			if err != nil {
				return err
			}
			if slices.Contains(ancestors, selfID) {
				return department.ErrParentCycle
			}
		}
	}

	if managerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, companyID, *managerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return department.ErrManagerNotFound
			}
			return fmt.Errorf("failed to get manager: %w", err)
		}
	}

	return nil
}

func toDepartmentResponses(departments []department.Department) []department.DepartmentResponse {
	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.ToResponse(d))
	}
	return responses
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *masterServiceImpl) CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	created, err := s.designationRepo.Create(ctx, designation.Designation{
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Code:        req.Code,
		Level:       req.Level,
		Description: req.Description,
		CreatedBy:   req.ActorID,
	})
	if err != nil {
		return designation.DesignationResponse{}, err
	}

	return designation.ToResponse(created), nil
}

func (s *masterServiceImpl) GetDesignation(ctx context.Context, companyID, id string) (designation.DesignationResponse, error) {
	d, err := s.designationRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.ToResponse(d), nil
}

func (s *masterServiceImpl) ListDesignations(ctx context.Context, companyID string, page, pageSize int) (designation.ListDesignationResponse, error) {
	page, pageSize = pagination.Normalize(page, pageSize)

	designations, total, err := s.designationRepo.List(ctx, companyID, page, pageSize)
	if err != nil {
		return designation.ListDesignationResponse{}, err
	}

	responses := make([]designation.DesignationResponse, 0, len(designations))
	for _, d := range designations {
		responses = append(responses, designation.ToResponse(d))
	}

	return designation.ListDesignationResponse{
		Designations: responses,
		Pagination:   pagination.NewMeta(page, pageSize, total),
	}, nil
}

func (s *masterServiceImpl) UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	existing, err := s.designationRepo.GetByID(ctx, req.CompanyID, req.ID)
	if err != nil {
		return designation.DesignationResponse{}, err
	}

	existing.Name = req.Name
	existing.Code = req.Code
	existing.Level = req.Level
	existing.Description = req.Description
	existing.ModifiedBy = &req.ActorID
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.designationRepo.Update(ctx, existing); err != nil {
		return designation.DesignationResponse{}, err
	}

	return designation.ToResponse(existing), nil
}

func (s *masterServiceImpl) DeleteDesignation(ctx context.Context, companyID, id string) error {
	if _, err := s.designationRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}

	holders, err := s.designationRepo.CountActiveEmployees(ctx, id)
	if err != nil {
		return err
	}
	if holders > 0 {
		return designation.ErrDesignationHasEmployees
	}

	return s.designationRepo.Delete(ctx, companyID, id)
}
