package branch

import "context"

type BranchRepository interface {
	GetByID(ctx context.Context, companyID, id string) (Branch, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Branch, error)
	GetTimezone(ctx context.Context, id string) (string, error)
}
