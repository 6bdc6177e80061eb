package employee

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	companyID     = uuid.NewString()
	otherCompany  = uuid.NewString()
	departmentID  = uuid.NewString()
	designationID = uuid.NewString()
	actorID       = uuid.NewString()
)

type fakeEmployeeRepo struct {
	mu   sync.Mutex
	rows map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, company, id string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok || e.CompanyID != company {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.CompanyID == e.CompanyID && existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	e.ID = uuid.NewString()
	e.IsActive = true
	e.CreatedAt = time.Now()
	f.rows[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	f.rows[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(_ context.Context, company, id, actor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok || e.CompanyID != company || !e.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}
	e.IsActive = false
	e.ModifiedBy = &actor
	f.rows[id] = e
	return nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []employee.Employee
	for _, e := range f.rows {
		if e.CompanyID == filter.CompanyID && (e.IsActive || filter.IncludeInactive) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	total := int64(len(out))
	start := min((filter.Page-1)*filter.PageSize, len(out))
	end := min(start+filter.PageSize, len(out))
	return out[start:end], total, nil
}

func (f *fakeEmployeeRepo) ExistsByUserID(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) CountActiveSubordinates(_ context.Context, company, managerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.rows {
		if e.CompanyID == company && e.IsActive && e.ManagerID != nil && *e.ManagerID == managerID {
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	user.UserRepository
	users map[string]user.User
}

func (f fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeDepartments struct {
	department.DepartmentRepository
}

func (fakeDepartments) GetByID(_ context.Context, company, id string) (department.Department, error) {
	if company != companyID || id != departmentID {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return department.Department{ID: id, CompanyID: company}, nil
}

type fakeDesignations struct {
	designation.DesignationRepository
}

func (fakeDesignations) GetByID(_ context.Context, company, id string) (designation.Designation, error) {
	if company != companyID || id != designationID {
		return designation.Designation{}, designation.ErrDesignationNotFound
	}
	return designation.Designation{ID: id, CompanyID: company}, nil
}

type employeeFixture struct {
	svc   employee.EmployeeService
	repo  *fakeEmployeeRepo
	users fakeUsers
}

func newEmployeeFixture() employeeFixture {
	repo := &fakeEmployeeRepo{rows: map[string]employee.Employee{}}
	users := fakeUsers{users: map[string]user.User{}}
	return employeeFixture{
		svc:   NewEmployeeService(repo, users, fakeDepartments{}, fakeDesignations{}),
		repo:  repo,
		users: users,
	}
}

func (f employeeFixture) newUser(company string) string {
	id := uuid.NewString()
	f.users.users[id] = user.User{ID: id, CompanyID: company, Role: user.RoleStaff, IsActive: true}
	return id
}

func (f employeeFixture) createRequest(code string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		CompanyID:     companyID,
		ActorID:       actorID,
		UserID:        f.newUser(companyID),
		EmployeeCode:  code,
		FirstName:     "Budi",
		LastName:      "Santoso",
		DepartmentID:  departmentID,
		DesignationID: designationID,
		JoinDate:      "2023-01-09",
	}
}

func updateFrom(resp employee.EmployeeResponse) employee.UpdateEmployeeRequest {
	return employee.UpdateEmployeeRequest{
		ID:            resp.ID,
		CompanyID:     companyID,
		ActorID:       actorID,
		EmployeeCode:  resp.EmployeeCode,
		FirstName:     resp.FirstName,
		LastName:      resp.LastName,
		DepartmentID:  resp.DepartmentID,
		DesignationID: resp.DesignationID,
		ManagerID:     resp.ManagerID,
		JoinDate:      resp.JoinDate,
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	resp, err := f.svc.CreateEmployee(ctx, f.createRequest("ENG-001"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Budi Santoso", resp.FullName)
	assert.Equal(t, "2023-01-09", resp.JoinDate)
	assert.True(t, resp.IsActive)
	assert.Equal(t, actorID, f.repo.rows[resp.ID].CreatedBy)
}

func TestCreateEmployee_Rules(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	first := f.createRequest("ENG-001")
	_, err := f.svc.CreateEmployee(ctx, first)
	require.NoError(t, err)

	dup := f.createRequest("ENG-002")
	dup.UserID = first.UserID
	_, err = f.svc.CreateEmployee(ctx, dup)
	assert.ErrorIs(t, err, employee.ErrUserAlreadyHasProfile)

	_, err = f.svc.CreateEmployee(ctx, f.createRequest("ENG-001"))
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	foreign := f.createRequest("ENG-003")
	foreign.UserID = f.newUser(otherCompany)
	_, err = f.svc.CreateEmployee(ctx, foreign)
	assert.ErrorIs(t, err, employee.ErrUserNotFound)

	noDept := f.createRequest("ENG-004")
	noDept.DepartmentID = uuid.NewString()
	_, err = f.svc.CreateEmployee(ctx, noDept)
	assert.ErrorIs(t, err, employee.ErrDepartmentNotFound)

	noDesignation := f.createRequest("ENG-005")
	noDesignation.DesignationID = uuid.NewString()
	_, err = f.svc.CreateEmployee(ctx, noDesignation)
	assert.ErrorIs(t, err, employee.ErrDesignationNotFound)

	missingManager := f.createRequest("ENG-006")
	ghost := uuid.NewString()
	missingManager.ManagerID = &ghost
	_, err = f.svc.CreateEmployee(ctx, missingManager)
	assert.ErrorIs(t, err, employee.ErrManagerNotFound)
}

func TestCreateEmployee_Validation(t *testing.T) {
	f := newEmployeeFixture()
	req := f.createRequest("eng 001")
	req.JoinDate = "09-01-2023"
	gender := "unknown"
	req.Gender = &gender

	_, err := f.svc.CreateEmployee(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "employee_code")
	assert.Contains(t, fields, "join_date")
	assert.Contains(t, fields, "gender")
}

func TestUpdateEmployee_SelfManager(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	resp, err := f.svc.CreateEmployee(ctx, f.createRequest("ENG-001"))
	require.NoError(t, err)

	req := updateFrom(resp)
	req.ManagerID = &resp.ID
	_, err = f.svc.UpdateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrSelfManager)
}

func TestUpdateEmployee_ResignationBeforeJoin(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	resp, err := f.svc.CreateEmployee(ctx, f.createRequest("ENG-001"))
	require.NoError(t, err)

	req := updateFrom(resp)
	early := "2022-12-31"
	req.ResignationDate = &early
	_, err = f.svc.UpdateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrResignationBeforeJoining)

	later := "2024-06-30"
	req.ResignationDate = &later
	req.FirstName = "Budiman"
	updated, err := f.svc.UpdateEmployee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Budiman Santoso", updated.FullName)
	require.NotNil(t, updated.ResignationDate)
	assert.Equal(t, later, *updated.ResignationDate)
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	lead, err := f.svc.CreateEmployee(ctx, f.createRequest("ENG-001"))
	require.NoError(t, err)
	reportReq := f.createRequest("ENG-002")
	reportReq.ManagerID = &lead.ID
	report, err := f.svc.CreateEmployee(ctx, reportReq)
	require.NoError(t, err)

	err = f.svc.DeleteEmployee(ctx, companyID, lead.ID, actorID)
	assert.ErrorIs(t, err, employee.ErrEmployeeHasSubordinates)

	require.NoError(t, f.svc.DeleteEmployee(ctx, companyID, report.ID, actorID))
	assert.False(t, f.repo.rows[report.ID].IsActive)

	// The lead has no active reports left.
	require.NoError(t, f.svc.DeleteEmployee(ctx, companyID, lead.ID, actorID))

	err = f.svc.DeleteEmployee(ctx, companyID, lead.ID, actorID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInactive)

	err = f.svc.DeleteEmployee(ctx, otherCompany, report.ID, actorID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetMe(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	req := f.createRequest("ENG-001")
	created, err := f.svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	me, err := f.svc.GetMe(ctx, req.UserID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, me.ID)

	_, err = f.svc.GetMe(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	for _, code := range []string{"ENG-003", "ENG-001", "ENG-002"} {
		_, err := f.svc.CreateEmployee(ctx, f.createRequest(code))
		require.NoError(t, err)
	}

	resp, err := f.svc.ListEmployees(ctx, employee.EmployeeFilter{CompanyID: companyID, Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "ENG-001", resp.Employees[0].EmployeeCode)
	assert.Equal(t, int64(3), resp.Pagination.TotalCount)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)

	resp, err = f.svc.ListEmployees(ctx, employee.EmployeeFilter{CompanyID: otherCompany})
	require.NoError(t, err)
	assert.Empty(t, resp.Employees)
}
