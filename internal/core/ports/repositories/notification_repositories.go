package repositories

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// NotificationOutboxWriter stores notifications for a mailer to pick up.
type NotificationOutboxWriter interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
}
