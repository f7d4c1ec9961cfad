package dto

// AppointSigningAuthorityRequest defines data for appointing a signer.
type AppointSigningAuthorityRequest struct {
	UserID                 string `json:"userID" binding:"required"`
	IsIndependentParentRep bool   `json:"isIndependentParentRep"`
	Title                  string `json:"title" binding:"max=100"`
}

// UpdateSigningAuthorityRequest changes a signer's flags. Past approvals are never affected.
type UpdateSigningAuthorityRequest struct {
	IsActive               *bool   `json:"isActive"`
	IsIndependentParentRep *bool   `json:"isIndependentParentRep"`
	Title                  *string `json:"title" binding:"omitempty,max=100"`
}
