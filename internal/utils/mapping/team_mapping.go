package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/models"
)

// ToDomainTeam converts a model Team to a domain Team
func ToDomainTeam(m models.Team) domain.Team {
	return domain.Team{
		TeamID:        m.TeamID,
		Name:          m.Name,
		AssociationID: deref(m.AssociationID),
		CurrencyCode:  m.CurrencyCode,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTeamMember converts a model TeamMember to a domain TeamMember
func ToDomainTeamMember(m models.TeamMember) domain.TeamMember {
	return domain.TeamMember{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		UserName: m.UserName,
		Role:     domain.TeamRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

// ToDomainTeamSettings converts a model TeamSettings to domain overrides.
func ToDomainTeamSettings(m models.TeamSettings) domain.TeamSettings {
	s := domain.TeamSettings{
		TeamID:                          m.TeamID,
		DualApprovalThresholdCents:      m.DualApprovalThresholdCents,
		CashLikeRequiresReview:          m.CashLikeRequiresReview,
		ChequeImageThresholdCents:       m.ChequeImageThresholdCents,
		ReceiptThreshold:                nullDecimal(m.ReceiptThreshold),
		TransactionLimit:                nullDecimal(m.TransactionLimit),
		CategoryOverrunTolerancePercent: nullDecimal(m.CategoryOverrunTolerancePercent),
	}
	if m.RequiredApprovals != nil {
		v := int(*m.RequiredApprovals)
		s.RequiredApprovals = &v
	}
	if m.MinIndependentReps != nil {
		v := int(*m.MinIndependentReps)
		s.MinIndependentReps = &v
	}
	return s
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// ToModelSigningAuthority converts a domain TeamSigningAuthority to a model SigningAuthority
func ToModelSigningAuthority(d domain.TeamSigningAuthority) models.SigningAuthority {
	return models.SigningAuthority{
		TeamID:                 d.TeamID,
		UserID:                 d.UserID,
		IsActive:               d.IsActive,
		IsIndependentParentRep: d.IsIndependentParentRep,
		Title:                  nullIfEmpty(d.Title),
		AppointedAt:            d.AppointedAt,
		AppointedBy:            d.AppointedBy,
		RevokedAt:              d.RevokedAt,
	}
}

// ToDomainSigningAuthority converts a model SigningAuthority to a domain TeamSigningAuthority
func ToDomainSigningAuthority(m models.SigningAuthority) domain.TeamSigningAuthority {
	return domain.TeamSigningAuthority{
		TeamID:                 m.TeamID,
		UserID:                 m.UserID,
		IsActive:               m.IsActive,
		IsIndependentParentRep: m.IsIndependentParentRep,
		Title:                  deref(m.Title),
		AppointedAt:            m.AppointedAt,
		AppointedBy:            m.AppointedBy,
		RevokedAt:              m.RevokedAt,
	}
}

// ToDomainVendor converts a model Vendor to a domain Vendor
func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		VendorID:      m.VendorID,
		TeamID:        m.TeamID,
		Name:          m.Name,
		IsWhitelisted: m.IsWhitelisted,
	}
}

// ToDomainBudgetLineItem converts a model BudgetLineItem to a domain BudgetLineItem
func ToDomainBudgetLineItem(m models.BudgetLineItem) domain.BudgetLineItem {
	return domain.BudgetLineItem{
		LineItemID:   m.LineItemID,
		BudgetID:     m.BudgetID,
		TeamID:       m.TeamID,
		CategoryID:   m.CategoryID,
		BudgetStatus: domain.BudgetStatus(m.BudgetStatus),
	}
}

// ToDomainBudgetSnapshot folds the allocation rows of one budget into a snapshot.
// Rows must all belong to budgetID.
func ToDomainBudgetSnapshot(budgetID string, status string, rows []models.BudgetAllocation) domain.BudgetSnapshot {
	snapshot := domain.BudgetSnapshot{
		BudgetID:    budgetID,
		Status:      domain.BudgetStatus(status),
		Allocations: make(map[string]domain.BudgetAllocation, len(rows)),
	}
	for _, r := range rows {
		snapshot.Allocations[r.CategoryID] = domain.BudgetAllocation{
			CategoryID:   r.CategoryID,
			Allocated:    r.Allocated,
			CurrentSpent: r.CurrentSpent,
		}
	}
	return snapshot
}
