package master

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	companyID = uuid.NewString()
	branchID  = uuid.NewString()
	actorID   = uuid.NewString()
)

type fakeBranches struct {
	branches map[string]branch.Branch
}

func (f fakeBranches) GetByID(_ context.Context, company, id string) (branch.Branch, error) {
	b, ok := f.branches[id]
	if !ok || b.CompanyID != company {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (f fakeBranches) GetByCompanyID(_ context.Context, company string) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, b := range f.branches {
		if b.CompanyID == company {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f fakeBranches) GetTimezone(_ context.Context, id string) (string, error) {
	b, ok := f.branches[id]
	if !ok {
		return "", branch.ErrBranchNotFound
	}
	return b.Timezone, nil
}

type fakeDepartmentRepo struct {
	mu        sync.Mutex
	rows      map[string]department.Department
	employees map[string]int64
}

func (f *fakeDepartmentRepo) Create(_ context.Context, d department.Department) (department.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.CompanyID == d.CompanyID && existing.Code == d.Code {
			return department.Department{}, department.ErrDepartmentCodeExists
		}
	}
	d.ID = uuid.NewString()
	d.IsActive = true
	d.CreatedAt = time.Now()
	f.rows[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, company, id string) (department.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.rows[id]
	if !ok || d.CompanyID != company {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	d.EmployeeCount = f.employees[id]
	return d, nil
}

func (f *fakeDepartmentRepo) List(_ context.Context, filter department.DepartmentFilter) ([]department.Department, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []department.Department
	for _, d := range f.rows {
		if d.CompanyID == filter.CompanyID && (filter.BranchID == nil || d.BranchID == *filter.BranchID) {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDepartmentRepo) ListByBranch(ctx context.Context, company, branch string) ([]department.Department, error) {
	rows, _, err := f.List(ctx, department.DepartmentFilter{CompanyID: company, BranchID: &branch})
	return rows, err
}

func (f *fakeDepartmentRepo) Update(_ context.Context, d department.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[d.ID]; !ok {
		return department.ErrDepartmentNotFound
	}
	f.rows[d.ID] = d
	return nil
}

func (f *fakeDepartmentRepo) Delete(_ context.Context, company, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeDepartmentRepo) CountActiveEmployees(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.employees[id], nil
}

func (f *fakeDepartmentRepo) CountChildren(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, d := range f.rows {
		if d.ParentDepartmentID != nil && *d.ParentDepartmentID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeDepartmentRepo) GetAncestorIDs(_ context.Context, id string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	current := f.rows[id]
	for current.ParentDepartmentID != nil {
		out = append(out, *current.ParentDepartmentID)
		current = f.rows[*current.ParentDepartmentID]
	}
	return out, nil
}

type fakeDesignationRepo struct {
	mu      sync.Mutex
	rows    map[string]designation.Designation
	holders map[string]int64
}

func (f *fakeDesignationRepo) Create(_ context.Context, d designation.Designation) (designation.Designation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.CompanyID == d.CompanyID && existing.Code == d.Code {
			return designation.Designation{}, designation.ErrDesignationCodeExists
		}
	}
	d.ID = uuid.NewString()
	d.IsActive = true
	d.CreatedAt = time.Now()
	f.rows[d.ID] = d
	return d, nil
}

func (f *fakeDesignationRepo) GetByID(_ context.Context, company, id string) (designation.Designation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.rows[id]
	if !ok || d.CompanyID != company {
		return designation.Designation{}, designation.ErrDesignationNotFound
	}
	return d, nil
}

func (f *fakeDesignationRepo) List(_ context.Context, company string, page, pageSize int) ([]designation.Designation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []designation.Designation
	for _, d := range f.rows {
		if d.CompanyID == company {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDesignationRepo) Update(_ context.Context, d designation.Designation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[d.ID] = d
	return nil
}

func (f *fakeDesignationRepo) Delete(_ context.Context, company, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeDesignationRepo) CountActiveEmployees(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holders[id], nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
	known map[string]bool
}

func (f fakeEmployees) GetByID(_ context.Context, company, id string) (employee.Employee, error) {
	if company != companyID || !f.known[id] {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, CompanyID: company, IsActive: true}, nil
}

type masterFixture struct {
	svc          MasterService
	departments  *fakeDepartmentRepo
	designations *fakeDesignationRepo
	employees    fakeEmployees
}

func newMasterFixture() masterFixture {
	branches := fakeBranches{branches: map[string]branch.Branch{
		branchID: {ID: branchID, CompanyID: companyID, Name: "Jakarta HQ", Timezone: "Asia/Jakarta"},
	}}
	departments := &fakeDepartmentRepo{rows: map[string]department.Department{}, employees: map[string]int64{}}
	designations := &fakeDesignationRepo{rows: map[string]designation.Designation{}, holders: map[string]int64{}}
	employees := fakeEmployees{known: map[string]bool{}}

	return masterFixture{
		svc:          NewMasterService(branches, departments, designations, employees),
		departments:  departments,
		designations: designations,
		employees:    employees,
	}
}

func (f masterFixture) createDepartment(t *testing.T, code string, parentID *string) department.DepartmentResponse {
	t.Helper()
	resp, err := f.svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{
		CompanyID:          companyID,
		ActorID:            actorID,
		BranchID:           branchID,
		Name:               "Department " + code,
		Code:               code,
		ParentDepartmentID: parentID,
	})
	require.NoError(t, err)
	return resp
}

func updateRequest(d department.DepartmentResponse) department.UpdateDepartmentRequest {
	return department.UpdateDepartmentRequest{
		ID:                 d.ID,
		CompanyID:          companyID,
		ActorID:            actorID,
		Name:               d.Name,
		Code:               d.Code,
		ParentDepartmentID: d.ParentDepartmentID,
		ManagerID:          d.ManagerID,
		Description:        d.Description,
	}
}

func TestGetBranchLocation(t *testing.T) {
	f := newMasterFixture()

	loc, err := f.svc.GetBranchLocation(context.Background(), companyID, branchID)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())

	_, err = f.svc.GetBranchLocation(context.Background(), uuid.NewString(), branchID)
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}

func TestCreateDepartment(t *testing.T) {
	ctx := context.Background()
	f := newMasterFixture()

	eng := f.createDepartment(t, "ENG", nil)
	assert.Equal(t, branchID, eng.BranchID)
	assert.True(t, eng.IsActive)

	_, err := f.svc.CreateDepartment(ctx, department.CreateDepartmentRequest{
		CompanyID: companyID, BranchID: branchID, Name: "Again", Code: "ENG",
	})
	assert.ErrorIs(t, err, department.ErrDepartmentCodeExists)

	_, err = f.svc.CreateDepartment(ctx, department.CreateDepartmentRequest{
		CompanyID: companyID, BranchID: uuid.NewString(), Name: "Nowhere", Code: "NOW",
	})
	assert.ErrorIs(t, err, department.ErrBranchNotFound)

	ghost := uuid.NewString()
	_, err = f.svc.CreateDepartment(ctx, department.CreateDepartmentRequest{
		CompanyID: companyID, BranchID: branchID, Name: "Orphan", Code: "ORP", ParentDepartmentID: &ghost,
	})
	assert.ErrorIs(t, err, department.ErrParentDepartmentNotFound)

	_, err = f.svc.CreateDepartment(ctx, department.CreateDepartmentRequest{
		CompanyID: companyID, BranchID: branchID, Name: "Managed", Code: "MGD", ManagerID: &ghost,
	})
	assert.ErrorIs(t, err, department.ErrManagerNotFound)

	_, err = f.svc.CreateDepartment(ctx, department.CreateDepartmentRequest{CompanyID: companyID})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "branch_id")
	assert.Contains(t, verrs.ToMap(), "code")
}

func TestUpdateDepartment_ParentRules(t *testing.T) {
	ctx := context.Background()
	f := newMasterFixture()

	root := f.createDepartment(t, "ROOT", nil)
	child := f.createDepartment(t, "CHILD", &root.ID)
	grandchild := f.createDepartment(t, "GRAND", &child.ID)

	self := updateRequest(root)
	self.ParentDepartmentID = &root.ID
	_, err := f.svc.UpdateDepartment(ctx, self)
	assert.ErrorIs(t, err, department.ErrSelfParent)

	cycle := updateRequest(root)
	cycle.ParentDepartmentID = &grandchild.ID
	_, err = f.svc.UpdateDepartment(ctx, cycle)
	assert.ErrorIs(t, err, department.ErrParentCycle)

	moved := updateRequest(grandchild)
	moved.ParentDepartmentID = &root.ID
	inactive := false
	moved.IsActive = &inactive
	resp, err := f.svc.UpdateDepartment(ctx, moved)
	require.NoError(t, err)
	require.NotNil(t, resp.ParentDepartmentID)
	assert.Equal(t, root.ID, *resp.ParentDepartmentID)
	assert.False(t, resp.IsActive)
}

func TestDeleteDepartment_Guards(t *testing.T) {
	ctx := context.Background()
	f := newMasterFixture()

	parent := f.createDepartment(t, "OPS", nil)
	child := f.createDepartment(t, "OPS-1", &parent.ID)

	err := f.svc.DeleteDepartment(ctx, companyID, parent.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentHasChildren)

	f.departments.employees[child.ID] = 2
	err = f.svc.DeleteDepartment(ctx, companyID, child.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentHasEmployees)

	f.departments.employees[child.ID] = 0
	require.NoError(t, f.svc.DeleteDepartment(ctx, companyID, child.ID))
	require.NoError(t, f.svc.DeleteDepartment(ctx, companyID, parent.ID))

	err = f.svc.DeleteDepartment(ctx, companyID, parent.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestListDepartmentsByBranch(t *testing.T) {
	f := newMasterFixture()
	f.createDepartment(t, "HR", nil)

	resp, err := f.svc.ListDepartmentsByBranch(context.Background(), companyID, branchID)
	require.NoError(t, err)
	assert.Len(t, resp, 1)

	_, err = f.svc.ListDepartmentsByBranch(context.Background(), companyID, uuid.NewString())
	assert.ErrorIs(t, err, department.ErrBranchNotFound)
}

func TestDesignationLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newMasterFixture()

	created, err := f.svc.CreateDesignation(ctx, designation.CreateDesignationRequest{
		CompanyID: companyID, ActorID: actorID, Name: "Software Engineer", Code: "SWE", Level: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Level)

	_, err = f.svc.CreateDesignation(ctx, designation.CreateDesignationRequest{
		CompanyID: companyID, Name: "Duplicate", Code: "SWE", Level: 1,
	})
	assert.ErrorIs(t, err, designation.ErrDesignationCodeExists)

	_, err = f.svc.CreateDesignation(ctx, designation.CreateDesignationRequest{
		CompanyID: companyID, Name: "Too Senior", Code: "CEO", Level: 99,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "level")

	updated, err := f.svc.UpdateDesignation(ctx, designation.UpdateDesignationRequest{
		ID: created.ID, CompanyID: companyID, ActorID: actorID, Name: "Senior Software Engineer", Code: "SSWE", Level: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "SSWE", updated.Code)

	list, err := f.svc.ListDesignations(ctx, companyID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list.Designations, 1)
	assert.Equal(t, 1, list.Pagination.Page)

	f.designations.holders[created.ID] = 1
	err = f.svc.DeleteDesignation(ctx, companyID, created.ID)
	assert.ErrorIs(t, err, designation.ErrDesignationHasEmployees)

	f.designations.holders[created.ID] = 0
	require.NoError(t, f.svc.DeleteDesignation(ctx, companyID, created.ID))

	_, err = f.svc.GetDesignation(ctx, companyID, created.ID)
	assert.ErrorIs(t, err, designation.ErrDesignationNotFound)
}
