package services

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// NotifierSvc sends notifications without blocking or failing the caller.
type NotifierSvc interface {
	Notify(ctx context.Context, n domain.Notification)
}
