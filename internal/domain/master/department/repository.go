package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, companyID, id string) (Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]Department, int64, error)
	ListByBranch(ctx context.Context, companyID, branchID string) ([]Department, error)
	Update(ctx context.Context, d Department) error
	Delete(ctx context.Context, companyID, id string) error
	CountActiveEmployees(ctx context.Context, id string) (int64, error)
	CountChildren(ctx context.Context, id string) (int64, error)
	// GetAncestorIDs walks parent links upward from id, nearest first.
	GetAncestorIDs(ctx context.Context, id string) ([]string, error)
}
