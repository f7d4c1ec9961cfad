package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/models"
)

// ToModelPolicyException converts a domain PolicyException to a model PolicyException
func ToModelPolicyException(d domain.PolicyException) (models.PolicyException, error) {
	detail, err := json.Marshal(d.Detail)
	if err != nil {
		return models.PolicyException{}, fmt.Errorf("encode detail of policy exception %s: %w", d.PolicyExceptionID, err)
	}
	return models.PolicyException{
		PolicyExceptionID: d.PolicyExceptionID,
		TeamID:            d.TeamID,
		TransactionID:     d.TransactionID,
		BankTransactionID: d.BankTransactionID,
		SpendIntentID:     d.SpendIntentID,
		ExceptionType:     string(d.Type),
		Severity:          string(d.Severity),
		Detail:            detail,
		DetectedAt:        d.DetectedAt,
	}, nil
}

// ToDomainPolicyException converts a model PolicyException to a domain PolicyException
func ToDomainPolicyException(m models.PolicyException) (domain.PolicyException, error) {
	t := domain.PolicyExceptionType(m.ExceptionType)
	detail, err := domain.DecodeExceptionDetail(t, m.Detail)
	if err != nil {
		return domain.PolicyException{}, fmt.Errorf("decode detail of policy exception %s: %w", m.PolicyExceptionID, err)
	}
	return domain.PolicyException{
		PolicyExceptionID: m.PolicyExceptionID,
		TeamID:            m.TeamID,
		TransactionID:     m.TransactionID,
		BankTransactionID: m.BankTransactionID,
		SpendIntentID:     m.SpendIntentID,
		Type:              t,
		Severity:          domain.PolicyExceptionSeverity(m.Severity),
		Detail:            detail,
		DetectedAt:        m.DetectedAt,
	}, nil
}

// ToModelNotification converts a domain Notification into an outbox row.
func ToModelNotification(id string, n domain.Notification) (models.NotificationOutbox, error) {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return models.NotificationOutbox{}, fmt.Errorf("encode notification attributes: %w", err)
	}
	return models.NotificationOutbox{
		NotificationID: id,
		TeamID:         n.TeamID,
		Event:          string(n.Event),
		ActorID:        nullIfEmpty(n.ActorID),
		Subject:        n.Subject,
		Body:           n.Body,
		Attributes:     attrs,
		OccurredAt:     n.OccurredAt,
	}, nil
}
