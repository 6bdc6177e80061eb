package designation

import "time"

// Designation is a job title. Level 1 is the most junior.
type Designation struct {
	ID          string
	CompanyID   string
	Name        string
	Code        string
	Level       int
	Description *string
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	ModifiedBy  *string
	ModifiedAt  *time.Time

	EmployeeCount int64
}
