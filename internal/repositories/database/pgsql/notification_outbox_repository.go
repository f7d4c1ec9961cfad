package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	"github.com/SscSPs/team_cfo_backend/internal/utils/mapping"
)

type PgxNotificationOutboxRepository struct {
	BaseRepository
}

func newPgxNotificationOutboxRepository(pool *pgxpool.Pool) portsrepo.NotificationOutboxWriter {
	return &PgxNotificationOutboxRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.NotificationOutboxWriter = (*PgxNotificationOutboxRepository)(nil)

// SaveNotification queues a notification for the mailer.
func (r *PgxNotificationOutboxRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m, err := mapping.ToModelNotification(uuid.NewString(), n)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode notification", err)
	}
	query := `
		INSERT INTO notification_outbox (notification_id, team_id, event, actor_id, subject, body, attributes, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.NotificationID,
		m.TeamID,
		m.Event,
		m.ActorID,
		m.Subject,
		m.Body,
		m.Attributes,
		m.OccurredAt,
	)
	return mapError(err, "save notification "+m.NotificationID)
}
