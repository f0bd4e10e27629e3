package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// AttachmentService records attachment metadata against a task. Like
// comments, any authenticated user may attach to an existing task.
type AttachmentService struct {
	attachments ports.AttachmentRepository
	tasks       ports.TaskRepository
	logger      zerolog.Logger
}

func NewAttachmentService(
	attachments ports.AttachmentRepository,
	tasks ports.TaskRepository,
	logger zerolog.Logger,
) *AttachmentService {
	return &AttachmentService{attachments: attachments, tasks: tasks, logger: logger}
}

func (s *AttachmentService) Add(ctx context.Context, actor *domain.User, taskID string, in ports.AddAttachmentInput) (*domain.TaskAttachment, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if in.FileName == "" {
		return nil, &domain.ValidationError{Field: "file_name", Reason: "must not be empty"}
	}
	if in.SizeBytes < 0 {
		return nil, &domain.ValidationError{Field: "size_bytes", Reason: "must not be negative"}
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	attachment := &domain.TaskAttachment{
		TaskID:      taskID,
		UploaderID:  actor.ID,
		FileName:    in.FileName,
		Description: in.Description,
		SizeBytes:   in.SizeBytes,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to store attachment")
		return nil, err
	}
	s.logger.Info().
		Str("task_id", taskID).
		Str("attachment_id", attachment.ID).
		Str("uploader_id", actor.ID).
		Msg("attachment added")

	return attachment, nil
}

func (s *AttachmentService) ListByTask(ctx context.Context, actor *domain.User, taskID string) ([]*domain.TaskAttachment, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.attachments.ListByTask(ctx, taskID)
}
