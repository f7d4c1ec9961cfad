package models

import "time"

// BankTransaction is a row of plaid_bank_transactions.
type BankTransaction struct {
	BankTransactionID     string     `db:"bank_transaction_id"`
	TeamID                string     `db:"team_id"`
	ExternalTransactionID string     `db:"external_transaction_id"`
	AmountCents           int64      `db:"amount_cents"`
	CurrencyCode          string     `db:"currency_code"`
	PostedDate            time.Time  `db:"posted_date"`
	AuthorizedDate        *time.Time `db:"authorized_date"`
	MerchantName          *string    `db:"merchant_name"`
	RawName               *string    `db:"raw_name"`
	PaymentChannel        *string    `db:"payment_channel"`
	Pending               bool       `db:"pending"`
	SpendIntentID         *string    `db:"spend_intent_id"`
	RawPayload            []byte     `db:"raw_payload"`
	PayloadDigest         string     `db:"payload_digest"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}
