package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// CommentService posts and lists comments. Posting triggers the notifier's
// comment hook after the write has committed.
type CommentService struct {
	comments ports.CommentRepository
	tasks    ports.TaskRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	tasks ports.TaskRepository,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, notifier: notifier, logger: logger}
}

func (s *CommentService) Add(ctx context.Context, actor *domain.User, taskID, content string) (*domain.TaskComment, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	comment := &domain.TaskComment{
		TaskID:    taskID,
		AuthorID:  actor.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to create comment")
		return nil, err
	}

	// Post-commit hook: live push + mention fan-out. Failures inside the
	// hook never surface here — the comment is already committed.
	s.notifier.CommentSaved(ctx, ports.CommentEvent{Comment: comment, Created: true})

	return comment, nil
}

func (s *CommentService) ListByTask(ctx context.Context, actor *domain.User, taskID string) ([]*domain.TaskComment, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}
