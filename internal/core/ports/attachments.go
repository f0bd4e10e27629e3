package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// AttachmentRepository defines persistence operations for task attachments.
// Attachments are cascade-deleted with their task and never edited.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.TaskAttachment) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.TaskAttachment, error)
}

// AddAttachmentInput carries the metadata of one uploaded file.
type AddAttachmentInput struct {
	FileName    string
	Description string
	SizeBytes   int64
}

// AttachmentService records and lists file attachments on a task.
type AttachmentService interface {
	Add(ctx context.Context, actor *domain.User, taskID string, in AddAttachmentInput) (*domain.TaskAttachment, error)
	ListByTask(ctx context.Context, actor *domain.User, taskID string) ([]*domain.TaskAttachment, error)
}
