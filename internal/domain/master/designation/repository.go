package designation

import "context"

type DesignationRepository interface {
	Create(ctx context.Context, d Designation) (Designation, error)
	GetByID(ctx context.Context, companyID, id string) (Designation, error)
	List(ctx context.Context, companyID string, page, pageSize int) ([]Designation, int64, error)
	Update(ctx context.Context, d Designation) error
	Delete(ctx context.Context, companyID, id string) error
	CountActiveEmployees(ctx context.Context, id string) (int64, error)
}
