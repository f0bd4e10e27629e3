package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// TaskEvent is handed to the notifier after a task write has committed.
type TaskEvent struct {
	Task    *domain.Task
	Created bool
	// PrevAssigneeID is the assignee before the write ("" when unassigned
	// or when Created is true). Lets the notifier detect reassignment.
	PrevAssigneeID string
}

// CommentEvent is handed to the notifier after a comment write has committed.
type CommentEvent struct {
	Comment *domain.TaskComment
	Created bool
}

// Notifier reacts to domain events by creating notification rows and pushing
// live updates. Calls are synchronous with the triggering write; internal
// failures (mention misses, live-channel outages) are absorbed and never
// surfaced to the caller.
type Notifier interface {
	TaskSaved(ctx context.Context, ev TaskEvent)
	CommentSaved(ctx context.Context, ev CommentEvent)
}

// LiveMessage is a live-channel update scoped to one task's channel.
type LiveMessage struct {
	TaskID  string
	Message string
}

// LivePusher accepts a message for asynchronous delivery. Implementations
// must not block the caller; delivery is at-least-once, best effort.
type LivePusher interface {
	Push(msg LiveMessage)
}

// LivePublisher performs the actual broadcast to all subscribers of the
// task's channel.
type LivePublisher interface {
	Publish(ctx context.Context, msg LiveMessage) error
}
