package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/authorization"
)

// --- Spend intent DTOs ---

// ChequeMetadataRequest carries cheque evidence.
type ChequeMetadataRequest struct {
	ChequeNumber       string  `json:"chequeNumber" binding:"max=32"`
	SecondSignerUserID *string `json:"secondSignerUserID"`
	SecondSignerName   *string `json:"secondSignerName" binding:"omitempty,max=200"`
	ChequeImageFileID  *string `json:"chequeImageFileID"`
}

// CreateSpendIntentRequest defines data for proposing a spend.
// Amount and payment method are checked by the authorization input validator so
// that every problem is reported at once.
type CreateSpendIntentRequest struct {
	AmountCents      *decimal.Decimal       `json:"amountCents" swaggertype:"integer"`
	CurrencyCode     string                 `json:"currencyCode" binding:"omitempty,iso4217"`
	PaymentMethod    string                 `json:"paymentMethod"`
	VendorID         *string                `json:"vendorID"`
	VendorName       string                 `json:"vendorName" binding:"max=200"`
	PayeeUserID      *string                `json:"payeeUserID"`
	BudgetLineItemID *string                `json:"budgetLineItemID"`
	Description      string                 `json:"description" binding:"max=1000"`
	Cheque           *ChequeMetadataRequest `json:"cheque"`
}

// ListSpendIntentsParams defines query parameters for listing spend intents.
type ListSpendIntentsParams struct {
	ListParams
	Status *string `form:"status" binding:"omitempty,oneof=AUTHORIZATION_PENDING AUTHORIZED OUTSTANDING SETTLED"`
}

// SpendIntentResponse defines data returned for a spend intent.
type SpendIntentResponse struct {
	SpendIntentID          string                   `json:"spendIntentID"`
	TeamID                 string                   `json:"teamID"`
	AmountCents            int64                    `json:"amountCents"`
	CurrencyCode           string                   `json:"currencyCode"`
	PaymentMethod          domain.PaymentMethod     `json:"paymentMethod"`
	VendorID               *string                  `json:"vendorID,omitempty"`
	VendorName             string                   `json:"vendorName,omitempty"`
	PayeeUserID            *string                  `json:"payeeUserID,omitempty"`
	BudgetLineItemID       *string                  `json:"budgetLineItemID,omitempty"`
	Description            string                   `json:"description,omitempty"`
	AuthorizationType      domain.AuthorizationType `json:"authorizationType"`
	RequiresManualApproval bool                     `json:"requiresManualApproval"`
	Status                 domain.SpendIntentStatus `json:"status"`
	AuthorizedAt           *time.Time               `json:"authorizedAt,omitempty"`
	CreatedAt              time.Time                `json:"createdAt"`
	CreatedBy              string                   `json:"createdBy"`
}

// CreateSpendIntentResponse is the created intent plus the decision that shaped it.
type CreateSpendIntentResponse struct {
	SpendIntent          SpendIntentResponse    `json:"spendIntent"`
	Decision             authorization.Decision `json:"decision"`
	DualApprovalAdvisory bool                   `json:"dualApprovalAdvisory"`
}

// ListSpendIntentsResponse wraps a page of spend intents.
type ListSpendIntentsResponse struct {
	SpendIntents []SpendIntentResponse `json:"spendIntents"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// SpendIntentCreation is what the service returns from CreateSpendIntent.
type SpendIntentCreation struct {
	Intent               domain.SpendIntent
	Cheque               *domain.ChequeMetadata
	Decision             authorization.Decision
	DualApprovalAdvisory bool
}

// ToSpendIntentResponse converts domain.SpendIntent to DTO.
func ToSpendIntentResponse(s *domain.SpendIntent) SpendIntentResponse {
	return SpendIntentResponse{
		SpendIntentID:          s.SpendIntentID,
		TeamID:                 s.TeamID,
		AmountCents:            s.AmountCents,
		CurrencyCode:           s.CurrencyCode,
		PaymentMethod:          s.PaymentMethod,
		VendorID:               s.VendorID,
		VendorName:             s.VendorName,
		PayeeUserID:            s.PayeeUserID,
		BudgetLineItemID:       s.BudgetLineItemID,
		Description:            s.Description,
		AuthorizationType:      s.AuthorizationType,
		RequiresManualApproval: s.RequiresManualApproval,
		Status:                 s.Status,
		AuthorizedAt:           s.AuthorizedAt,
		CreatedAt:              s.CreatedAt,
		CreatedBy:              s.CreatedBy,
	}
}

// ToSpendIntentResponses converts a slice of domain.SpendIntent to DTOs.
func ToSpendIntentResponses(items []domain.SpendIntent) []SpendIntentResponse {
	out := make([]SpendIntentResponse, len(items))
	for i := range items {
		out[i] = ToSpendIntentResponse(&items[i])
	}
	return out
}
