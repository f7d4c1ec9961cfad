package notify

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
)

// LogSink writes notifications to the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Name() string { return "log" }

func (s LogSink) Send(_ context.Context, n domain.Notification) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification",
		slog.String("event", string(n.Event)),
		slog.String("team_id", n.TeamID),
		slog.String("subject", n.Subject),
		slog.Any("attributes", n.Attributes))
	return nil
}

// OutboxSink stores notifications in the outbox table for the mailer.
type OutboxSink struct {
	Outbox portsrepo.NotificationOutboxWriter
}

func (s OutboxSink) Name() string { return "outbox" }

func (s OutboxSink) Send(ctx context.Context, n domain.Notification) error {
	return s.Outbox.SaveNotification(ctx, n)
}

// PosthogSink captures notifications as product analytics events.
type PosthogSink struct {
	Client *PosthogClient
}

func (s PosthogSink) Name() string { return "posthog" }

func (s PosthogSink) Send(_ context.Context, n domain.Notification) error {
	props := posthog.NewProperties().
		Set("team_id", n.TeamID).
		Set("subject", n.Subject)
	for k, v := range n.Attributes {
		props.Set(k, v)
	}
	distinctID := n.ActorID
	if distinctID == "" {
		distinctID = "team:" + n.TeamID
	}
	return s.Client.Enqueue(distinctID, string(n.Event), props)
}
