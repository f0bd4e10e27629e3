package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// NotificationService is the thin read API over a user's notifications.
type NotificationService struct {
	notifications ports.NotificationRepository
	logger        zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

func (s *NotificationService) List(ctx context.Context, actor *domain.User) ([]*domain.Notification, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	return s.notifications.ListByRecipient(ctx, actor.ID)
}

// MarkAllRead flips every unread notification of the actor to read. Calling
// it again is a no-op, never an error: the read flag only moves false→true.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *domain.User) (int64, error) {
	if actor == nil {
		return 0, domain.ErrForbidden
	}
	updated, err := s.notifications.MarkAllRead(ctx, actor.ID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.logger.Debug().Str("user_id", actor.ID).Int64("updated", updated).Msg("notifications marked read")
	}
	return updated, nil
}
