package employee

import (
	"time"
)

type Employee struct {
	ID              string
	CompanyID       string
	UserID          string
	EmployeeCode    string
	FirstName       string
	LastName        string
	DepartmentID    string
	DesignationID   string
	ManagerID       *string
	DateOfBirth     *time.Time
	Gender          *Gender
	PhoneNumber     *string
	Address         *string
	JoinDate        time.Time
	ResignationDate *time.Time
	IsActive        bool
	CreatedBy       string
	CreatedAt       time.Time
	ModifiedBy      *string
	ModifiedAt      *time.Time

	// Joined
	Email            *string
	DepartmentName   *string
	DepartmentCode   *string
	DesignationName  *string
	DesignationLevel *int
	ManagerName      *string
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case Male, Female, Other:
		return true
	}
	return false
}
