package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// CommentRepository defines persistence operations for task comments.
// Comments are cascade-deleted with their task and never edited.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.TaskComment) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.TaskComment, error)
}

// CommentService posts and lists comments on a task.
type CommentService interface {
	Add(ctx context.Context, actor *domain.User, taskID, content string) (*domain.TaskComment, error)
	ListByTask(ctx context.Context, actor *domain.User, taskID string) ([]*domain.TaskComment, error)
}
