package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, companyID, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) error
	Deactivate(ctx context.Context, companyID, id, actorID string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	CountActiveSubordinates(ctx context.Context, companyID, managerID string) (int64, error)
}
