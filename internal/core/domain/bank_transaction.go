package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PlaidBankTransaction is an externally reported bank-feed entry.
// AmountCents is always positive; the feed's sign is not kept.
type PlaidBankTransaction struct {
	BankTransactionID     string          `json:"bankTransactionID"`
	TeamID                string          `json:"teamID"`
	ExternalTransactionID string          `json:"externalTransactionID"`
	AmountCents           int64           `json:"amountCents"`
	CurrencyCode          string          `json:"currencyCode"`
	PostedDate            time.Time       `json:"postedDate"`
	AuthorizedDate        *time.Time      `json:"authorizedDate,omitempty"`
	MerchantName          string          `json:"merchantName,omitempty"`
	RawName               string          `json:"rawName,omitempty"`
	PaymentChannel        string          `json:"paymentChannel,omitempty"`
	Pending               bool            `json:"pending"`
	SpendIntentID         *string         `json:"spendIntentID,omitempty"`
	RawPayload            json.RawMessage `json:"rawPayload,omitempty"`
	PayloadDigest         string          `json:"-"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// EffectiveTime is when money actually moved: the authorized date if known, else the posted date.
func (b *PlaidBankTransaction) EffectiveTime() time.Time {
	if b.AuthorizedDate != nil {
		return *b.AuthorizedDate
	}
	return b.PostedDate
}

// Description returns the merchant name, falling back to the raw description.
func (b *PlaidBankTransaction) Description() string {
	if b.MerchantName != "" {
		return b.MerchantName
	}
	return b.RawName
}

// BankFeedEntry is one row delivered by the bank-feed integration before normalization.
type BankFeedEntry struct {
	ExternalID     string          `json:"externalID"`
	Amount         decimal.Decimal `json:"amount"` // signed, major units
	CurrencyCode   string          `json:"currencyCode"`
	PostedDate     time.Time       `json:"postedDate"`
	AuthorizedDate *time.Time      `json:"authorizedDate,omitempty"`
	MerchantName   string          `json:"merchantName,omitempty"`
	RawName        string          `json:"rawName,omitempty"`
	PaymentChannel string          `json:"paymentChannel,omitempty"`
	Pending        bool            `json:"pending"`
	Raw            json.RawMessage `json:"raw,omitempty"`
}

// IngestionRowError is a per-row ingestion failure. It never aborts the batch.
type IngestionRowError struct {
	ExternalID string `json:"externalID"`
	Error      string `json:"error"`
}

// IngestionResult summarizes one batch ingestion.
type IngestionResult struct {
	Inserted  int                 `json:"inserted"`
	Updated   int                 `json:"updated"`
	Unchanged int                 `json:"unchanged"`
	Errored   int                 `json:"errored"`
	Errors    []IngestionRowError `json:"errors"`
}

// UpsertOutcome is what happened to a single row on upsert.
type UpsertOutcome string

const (
	UpsertInserted  UpsertOutcome = "INSERTED"
	UpsertUpdated   UpsertOutcome = "UPDATED"
	UpsertUnchanged UpsertOutcome = "UNCHANGED"
)
