package domain

import "time"

// MatchCandidate is a scored spend intent considered for a bank transaction.
type MatchCandidate struct {
	SpendIntentID string            `json:"spendIntentID"`
	AmountCents   int64             `json:"amountCents"`
	Status        SpendIntentStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	// Score is the absolute time distance plus a penalty for intents created after the posting.
	Score              time.Duration `json:"score"`
	CreatedAfterPosted bool          `json:"createdAfterPosted"`
}

// MatchResult is the outcome of matching one bank transaction.
type MatchResult struct {
	Matched       bool             `json:"matched"`
	SpendIntentID *string          `json:"spendIntentID,omitempty"`
	Reason        string           `json:"reason"`
	Candidates    []MatchCandidate `json:"candidates"`
}

// ReconciliationResult is returned by one reconciliation run.
type ReconciliationResult struct {
	Success           bool              `json:"success"`
	Matched           bool              `json:"matched"`
	AlreadyReconciled bool              `json:"alreadyReconciled"`
	BankTransactionID string            `json:"bankTransactionID"`
	SpendIntentID     *string           `json:"spendIntentID,omitempty"`
	TransactionID     *string           `json:"transactionID,omitempty"`
	Reason            string            `json:"reason"`
	Candidates        []MatchCandidate  `json:"candidates"`
	Exceptions        []PolicyException `json:"exceptions"`
}
