package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	TeamAuthorizer portssvc.TeamAuthorizerSvc
	Notifier       portssvc.NotifierSvc
	Clock          func() time.Time
}

// Option configures the parts of BaseService every service shares.
type Option func(*BaseService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *BaseService) { b.Clock = now }
}

// WithNotifier sets where notifications go. Without one they are dropped.
func WithNotifier(n portssvc.NotifierSvc) Option {
	return func(b *BaseService) { b.Notifier = n }
}

// WithTeamAuthorizer sets the membership and signing authority checker.
func WithTeamAuthorizer(a portssvc.TeamAuthorizerSvc) Option {
	return func(b *BaseService) { b.TeamAuthorizer = a }
}

func (s *BaseService) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// Now returns the current UTC time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for a team.
// Without an authorizer every request is refused.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, teamID string, requiredRole domain.TeamRole) error {
	if s.TeamAuthorizer == nil {
		s.LogError(ctx, apperrors.ErrForbidden, "No team authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("team_id", teamID))
		return apperrors.Forbidden("access to this team cannot be verified")
	}
	return s.TeamAuthorizer.AuthorizeUserAction(ctx, userID, teamID, requiredRole)
}

// Notify hands n to the notifier. It never fails the caller.
func (s *BaseService) Notify(ctx context.Context, n domain.Notification) {
	if s.Notifier == nil {
		return
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = s.Now()
	}
	s.Notifier.Notify(ctx, n)
}
