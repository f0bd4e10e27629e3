package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/api/metrics"
	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/mention"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// commentPreviewLen is how many characters of a comment are broadcast over
// the live channel.
const commentPreviewLen = 30

// DedupChecker abstracts the notification dedup store (Redis). Post-save
// hooks are delivered at least once; the checker bounds duplicate rows when
// a hook is replayed. A check failure is never fatal — we notify anyway.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// NotifierOptions tune event handling behavior.
type NotifierOptions struct {
	// NotifyOnReassign extends assignment notifications to updates that
	// change an existing task's assignee. Off by default: the legacy
	// behavior notifies on creation-time assignment only.
	NotifyOnReassign bool
}

type notifier struct {
	notifications ports.NotificationRepository
	users         ports.UserRepository
	pusher        ports.LivePusher
	dedup         DedupChecker
	opts          NotifierOptions
	log           zerolog.Logger
}

// NewNotifier returns the Notifier reacting to task and comment writes.
// dedup may be nil, in which case replayed hooks produce duplicate rows
// (wasteful but harmless).
func NewNotifier(
	notifications ports.NotificationRepository,
	users ports.UserRepository,
	pusher ports.LivePusher,
	dedup DedupChecker,
	opts NotifierOptions,
	log zerolog.Logger,
) ports.Notifier {
	return &notifier{
		notifications: notifications,
		users:         users,
		pusher:        pusher,
		dedup:         dedup,
		opts:          opts,
		log:           log,
	}
}

// TaskSaved creates an assignment notification when a task is created with
// an assignee. Reassignment on update only notifies when NotifyOnReassign
// is set.
func (n *notifier) TaskSaved(ctx context.Context, ev ports.TaskEvent) {
	timer := prometheus.NewTimer(metrics.NotifierDuration.WithLabelValues("task_saved"))
	defer timer.ObserveDuration()

	if ev.Task == nil || ev.Task.AssigneeID == "" {
		return
	}
	switch {
	case ev.Created:
		// creation-time assignment always notifies
	case n.opts.NotifyOnReassign && ev.Task.AssigneeID != ev.PrevAssigneeID:
		// assignee changed on update and the switch is on
	default:
		return
	}

	log := n.log.With().
		Str("event_id", uuid.NewString()).
		Str("task_id", ev.Task.ID).
		Str("assignee_id", ev.Task.AssigneeID).
		Logger()

	// UpdatedAt pins the key to this particular write: a replayed hook
	// carries the same timestamp and is suppressed, while repeated
	// reassignments inside the TTL window are distinct events and all notify.
	key := fmt.Sprintf("task_assigned:%s:%s:%d", ev.Task.ID, ev.Task.AssigneeID, ev.Task.UpdatedAt.UnixNano())
	if n.alreadyNotified(ctx, key, log) {
		return
	}

	n.create(ctx, &domain.Notification{
		RecipientID: ev.Task.AssigneeID,
		ActorID:     ev.Task.CreatorID,
		Verb:        domain.VerbTaskAssigned,
		Target:      domain.TargetRef{Kind: domain.TargetTask, ID: ev.Task.ID},
		CreatedAt:   time.Now().UTC(),
	}, log)
}

// CommentSaved handles a new comment: a fire-and-forget live push of a short
// preview, then one mention notification per resolved, non-author mention.
// The two effects are independent; neither failure reaches the caller.
func (n *notifier) CommentSaved(ctx context.Context, ev ports.CommentEvent) {
	timer := prometheus.NewTimer(metrics.NotifierDuration.WithLabelValues("comment_saved"))
	defer timer.ObserveDuration()

	if ev.Comment == nil || !ev.Created {
		return
	}

	log := n.log.With().
		Str("event_id", uuid.NewString()).
		Str("comment_id", ev.Comment.ID).
		Str("task_id", ev.Comment.TaskID).
		Logger()

	// 1. Live push. The pusher never blocks; delivery failures are handled
	// (and counted) downstream.
	n.pusher.Push(ports.LiveMessage{
		TaskID:  ev.Comment.TaskID,
		Message: fmt.Sprintf("New comment added: %q", truncate(ev.Comment.Content, commentPreviewLen)),
	})

	// 2. Mention fan-out. Duplicate candidates within one comment are
	// collapsed before resolution.
	seen := make(map[string]struct{})
	for _, candidate := range mention.Extract(ev.Comment.Content) {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		n.notifyMention(ctx, ev.Comment, candidate, log)
	}
}

// notifyMention resolves one candidate and creates its notification. Every
// non-resolving outcome is a local skip, never an error.
func (n *notifier) notifyMention(ctx context.Context, comment *domain.TaskComment, candidate string, log zerolog.Logger) {
	matches, err := n.users.FindByEmailLocalPart(ctx, candidate)
	if err != nil {
		metrics.MentionLookupsTotal.WithLabelValues("miss").Inc()
		log.Warn().Err(err).Str("candidate", candidate).Msg("mention lookup failed, skipping")
		return
	}
	if len(matches) == 0 {
		metrics.MentionLookupsTotal.WithLabelValues("miss").Inc()
		log.Debug().Str("candidate", candidate).Msg("mention did not resolve")
		return
	}
	if len(matches) > 1 {
		// Several users share the local part across domains. Never pick one
		// silently.
		metrics.MentionLookupsTotal.WithLabelValues("ambiguous").Inc()
		log.Warn().Str("candidate", candidate).Int("matches", len(matches)).Msg("ambiguous mention skipped")
		return
	}

	user := matches[0]
	if user.ID == comment.AuthorID {
		metrics.MentionLookupsTotal.WithLabelValues("self").Inc()
		return
	}
	if !user.IsActive {
		metrics.MentionLookupsTotal.WithLabelValues("inactive").Inc()
		return
	}

	key := fmt.Sprintf("mention:%s:%s", comment.ID, user.ID)
	if n.alreadyNotified(ctx, key, log) {
		return
	}

	metrics.MentionLookupsTotal.WithLabelValues("resolved").Inc()
	// Target the task, not the comment: the notification must be directly
	// navigable.
	n.create(ctx, &domain.Notification{
		RecipientID: user.ID,
		ActorID:     comment.AuthorID,
		Verb:        domain.VerbMentioned,
		Target:      domain.TargetRef{Kind: domain.TargetTask, ID: comment.TaskID},
		CreatedAt:   time.Now().UTC(),
	}, log)
}

// create persists a notification row. A write failure is logged, not
// propagated — the triggering write has already committed.
func (n *notifier) create(ctx context.Context, notif *domain.Notification, log zerolog.Logger) {
	if err := n.notifications.Create(ctx, notif); err != nil {
		log.Error().Err(err).Str("verb", notif.Verb).Str("recipient_id", notif.RecipientID).Msg("failed to create notification")
		return
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(notif.Verb).Inc()
	log.Info().
		Str("verb", notif.Verb).
		Str("recipient_id", notif.RecipientID).
		Str("target_kind", string(notif.Target.Kind)).
		Str("target_id", notif.Target.ID).
		Msg("notification created")
}

// alreadyNotified consults the dedup store. Check failures process anyway.
func (n *notifier) alreadyNotified(ctx context.Context, key string, log zerolog.Logger) bool {
	if n.dedup == nil {
		return false
	}
	dup, err := n.dedup.IsDuplicate(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dedup check failed, notifying anyway")
		return false
	}
	if dup {
		log.Debug().Str("key", key).Msg("duplicate notification skipped")
		return true
	}
	if err := n.dedup.Mark(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to set dedup key")
	}
	return false
}

// truncate returns the first max runes of s.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
