package mapping

import (
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/models"
)

// ToModelSpendIntent converts a domain SpendIntent to a model SpendIntent
func ToModelSpendIntent(d domain.SpendIntent) models.SpendIntent {
	return models.SpendIntent{
		SpendIntentID:          d.SpendIntentID,
		TeamID:                 d.TeamID,
		AmountCents:            d.AmountCents,
		CurrencyCode:           d.CurrencyCode,
		PaymentMethod:          string(d.PaymentMethod),
		VendorID:               d.VendorID,
		VendorName:             nullIfEmpty(d.VendorName),
		PayeeUserID:            d.PayeeUserID,
		BudgetLineItemID:       d.BudgetLineItemID,
		Description:            nullIfEmpty(d.Description),
		AuthorizationType:      string(d.AuthorizationType),
		RequiresManualApproval: d.RequiresManualApproval,
		Status:                 string(d.Status),
		AuthorizedAt:           d.AuthorizedAt,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSpendIntent converts a model SpendIntent to a domain SpendIntent
func ToDomainSpendIntent(m models.SpendIntent) domain.SpendIntent {
	return domain.SpendIntent{
		SpendIntentID:          m.SpendIntentID,
		TeamID:                 m.TeamID,
		AmountCents:            m.AmountCents,
		CurrencyCode:           m.CurrencyCode,
		PaymentMethod:          domain.PaymentMethod(m.PaymentMethod),
		VendorID:               m.VendorID,
		VendorName:             deref(m.VendorName),
		PayeeUserID:            m.PayeeUserID,
		BudgetLineItemID:       m.BudgetLineItemID,
		Description:            deref(m.Description),
		AuthorizationType:      domain.AuthorizationType(m.AuthorizationType),
		RequiresManualApproval: m.RequiresManualApproval,
		Status:                 domain.SpendIntentStatus(m.Status),
		AuthorizedAt:           m.AuthorizedAt,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSpendIntentSlice converts a slice of model SpendIntents to a slice of domain SpendIntents
func ToDomainSpendIntentSlice(ms []models.SpendIntent) []domain.SpendIntent {
	return toSlice(ms, ToDomainSpendIntent)
}

// ToModelApproval converts a domain SpendIntentApproval to a model SpendIntentApproval
func ToModelApproval(d domain.SpendIntentApproval) models.SpendIntentApproval {
	return models.SpendIntentApproval{
		ApprovalID:             d.ApprovalID,
		SpendIntentID:          d.SpendIntentID,
		ApproverUserID:         d.ApproverUserID,
		IsIndependentParentRep: d.IsIndependentParentRep,
		Note:                   d.Note,
		ApprovedAt:             d.ApprovedAt,
	}
}

// ToDomainApproval converts a model SpendIntentApproval to a domain SpendIntentApproval
func ToDomainApproval(m models.SpendIntentApproval) domain.SpendIntentApproval {
	return domain.SpendIntentApproval{
		ApprovalID:             m.ApprovalID,
		SpendIntentID:          m.SpendIntentID,
		ApproverUserID:         m.ApproverUserID,
		IsIndependentParentRep: m.IsIndependentParentRep,
		Note:                   m.Note,
		ApprovedAt:             m.ApprovedAt,
	}
}

// ToDomainApprovalSlice converts a slice of model approvals to a slice of domain approvals
func ToDomainApprovalSlice(ms []models.SpendIntentApproval) []domain.SpendIntentApproval {
	return toSlice(ms, ToDomainApproval)
}

// ToModelChequeMetadata converts a domain ChequeMetadata to a model ChequeMetadata
func ToModelChequeMetadata(d domain.ChequeMetadata) models.ChequeMetadata {
	return models.ChequeMetadata{
		SpendIntentID:      d.SpendIntentID,
		ChequeNumber:       nullIfEmpty(d.ChequeNumber),
		SecondSignerUserID: d.SecondSignerUserID,
		SecondSignerName:   d.SecondSignerName,
		ChequeImageFileID:  d.ChequeImageFileID,
		RecordedAt:         d.RecordedAt,
		RecordedBy:         d.RecordedBy,
	}
}

// ToDomainChequeMetadata converts a model ChequeMetadata to a domain ChequeMetadata
func ToDomainChequeMetadata(m models.ChequeMetadata) domain.ChequeMetadata {
	return domain.ChequeMetadata{
		SpendIntentID:      m.SpendIntentID,
		ChequeNumber:       deref(m.ChequeNumber),
		SecondSignerUserID: m.SecondSignerUserID,
		SecondSignerName:   m.SecondSignerName,
		ChequeImageFileID:  m.ChequeImageFileID,
		RecordedAt:         m.RecordedAt,
		RecordedBy:         m.RecordedBy,
	}
}
