package domain

// Vendor is a payee organization known to a team.
type Vendor struct {
	VendorID      string `json:"vendorID"`
	TeamID        string `json:"teamID"`
	Name          string `json:"name"`
	IsWhitelisted bool   `json:"isWhitelisted"`
}
