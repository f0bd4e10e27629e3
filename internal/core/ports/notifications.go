package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error)
	// MarkAllRead flips is_read to true for all of the recipient's unread
	// notifications and returns how many were flipped. The flag is
	// monotonic; already-read rows are untouched.
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

// NotificationService is the read API over the recipient's notifications.
type NotificationService interface {
	List(ctx context.Context, actor *domain.User) ([]*domain.Notification, error)
	MarkAllRead(ctx context.Context, actor *domain.User) (int64, error)
}
