package branch

// Branch is a company site. Timezone is an IANA zone name.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   *string
	Timezone  string
}

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	Timezone  string  `json:"timezone"`
}

func ToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Timezone:  b.Timezone,
	}
}
