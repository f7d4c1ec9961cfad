package models

import "time"

// SpendIntent is a row of spend_intents.
type SpendIntent struct {
	SpendIntentID          string     `db:"spend_intent_id"`
	TeamID                 string     `db:"team_id"`
	AmountCents            int64      `db:"amount_cents"`
	CurrencyCode           string     `db:"currency_code"`
	PaymentMethod          string     `db:"payment_method"`
	VendorID               *string    `db:"vendor_id"`
	VendorName             *string    `db:"vendor_name"`
	PayeeUserID            *string    `db:"payee_user_id"`
	BudgetLineItemID       *string    `db:"budget_line_item_id"`
	Description            *string    `db:"description"`
	AuthorizationType      string     `db:"authorization_type"`
	RequiresManualApproval bool       `db:"requires_manual_approval"`
	Status                 string     `db:"status"`
	AuthorizedAt           *time.Time `db:"authorized_at"`
	AuditFields
}

// SpendIntentApproval is a row of spend_intent_approvals.
type SpendIntentApproval struct {
	ApprovalID             string    `db:"approval_id"`
	SpendIntentID          string    `db:"spend_intent_id"`
	ApproverUserID         string    `db:"approver_user_id"`
	IsIndependentParentRep bool      `db:"is_independent_parent_rep"`
	Note                   *string   `db:"note"`
	ApprovedAt             time.Time `db:"approved_at"`
}

// ChequeMetadata is a row of cheque_metadata.
type ChequeMetadata struct {
	SpendIntentID      string    `db:"spend_intent_id"`
	ChequeNumber       *string   `db:"cheque_number"`
	SecondSignerUserID *string   `db:"second_signer_user_id"`
	SecondSignerName   *string   `db:"second_signer_name"`
	ChequeImageFileID  *string   `db:"cheque_image_file_id"`
	RecordedAt         time.Time `db:"recorded_at"`
	RecordedBy         string    `db:"recorded_by"`
}
