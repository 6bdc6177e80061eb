package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations.
// companyID and actorID always come from the caller's token.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, companyID, id string) (EmployeeResponse, error)

	// GetMe returns the profile linked to the user account.
	GetMe(ctx context.Context, userID string) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee deactivates the employee. Rows are never removed.
	DeleteEmployee(ctx context.Context, companyID, id, actorID string) error
}
