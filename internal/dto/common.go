package dto

import "github.com/SscSPs/team_cfo_backend/internal/apperrors"

// ListParams defines token pagination query parameters shared by list endpoints.
type ListParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error  string                 `json:"error"`
	Fields []apperrors.FieldError `json:"fields,omitempty"`
}
