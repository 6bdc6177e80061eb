package department

import "time"

type Department struct {
	ID                 string
	CompanyID          string
	BranchID           string
	Name               string
	Code               string
	ParentDepartmentID *string
	ManagerID          *string
	Description        *string
	IsActive           bool
	CreatedBy          string
	CreatedAt          time.Time
	ModifiedBy         *string
	ModifiedAt         *time.Time

	// Joined
	BranchName           *string
	ParentDepartmentName *string
	ManagerName          *string
	EmployeeCount        int64
}
