package models

import "time"

// PolicyException is a row of policy_exceptions. Detail is a JSONB document
// whose shape depends on ExceptionType.
type PolicyException struct {
	PolicyExceptionID string    `db:"policy_exception_id"`
	TeamID            string    `db:"team_id"`
	TransactionID     *string   `db:"transaction_id"`
	BankTransactionID *string   `db:"bank_transaction_id"`
	SpendIntentID     *string   `db:"spend_intent_id"`
	ExceptionType     string    `db:"exception_type"`
	Severity          string    `db:"severity"`
	Detail            []byte    `db:"detail"`
	DetectedAt        time.Time `db:"detected_at"`
}

// NotificationOutbox is a row of notification_outbox waiting for a mailer.
type NotificationOutbox struct {
	NotificationID string     `db:"notification_id"`
	TeamID         string     `db:"team_id"`
	Event          string     `db:"event"`
	ActorID        *string    `db:"actor_id"`
	Subject        string     `db:"subject"`
	Body           string     `db:"body"`
	Attributes     []byte     `db:"attributes"`
	OccurredAt     time.Time  `db:"occurred_at"`
	DeliveredAt    *time.Time `db:"delivered_at"`
}
