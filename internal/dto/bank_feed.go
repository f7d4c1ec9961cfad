package dto

import "github.com/SscSPs/team_cfo_backend/internal/core/domain"

// IngestBankTransactionsRequest is one batch from the bank-feed integration.
type IngestBankTransactionsRequest struct {
	Transactions []domain.BankFeedEntry `json:"transactions" binding:"required,max=1000"`
}
