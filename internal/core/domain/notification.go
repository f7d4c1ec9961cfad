package domain

import "time"

// NotificationEvent names something a human may want to hear about.
type NotificationEvent string

const (
	EventApprovalRecorded       NotificationEvent = "approval.recorded"
	EventSpendIntentAuthorized  NotificationEvent = "spend_intent.authorized"
	EventPolicyExceptionRaised  NotificationEvent = "policy_exception.raised"
	EventTransactionNeedsReview NotificationEvent = "transaction.needs_review"
)

// Notification is a fire-and-forget message. Delivery failures never reach the caller.
type Notification struct {
	Event      NotificationEvent `json:"event"`
	TeamID     string            `json:"teamID"`
	ActorID    string            `json:"actorID,omitempty"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}
