package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/domain"
)

func TestNotificationList_OwnOnly(t *testing.T) {
	notifications := &stubNotificationRepo{}
	for _, recipient := range []string{"user_a", "user_b", "user_a"} {
		_ = notifications.Create(context.Background(), &domain.Notification{
			RecipientID: recipient,
			Verb:        domain.VerbTaskAssigned,
			CreatedAt:   time.Now().UTC(),
		})
	}
	svc := NewNotificationService(notifications, zerolog.Nop())

	got, err := svc.List(context.Background(), userWithPerms("user_a"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("user_a sees %d notifications, want 2", len(got))
	}
}

func TestMarkAllRead_Monotonic(t *testing.T) {
	notifications := &stubNotificationRepo{}
	for i := 0; i < 3; i++ {
		_ = notifications.Create(context.Background(), &domain.Notification{
			RecipientID: "user_a",
			Verb:        domain.VerbMentioned,
			CreatedAt:   time.Now().UTC(),
		})
	}
	svc := NewNotificationService(notifications, zerolog.Nop())
	actor := userWithPerms("user_a")

	updated, err := svc.MarkAllRead(context.Background(), actor)
	if err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if updated != 3 {
		t.Fatalf("first call flipped %d, want 3", updated)
	}

	// Second call touches nothing: the flag never moves back.
	updated, err = svc.MarkAllRead(context.Background(), actor)
	if err != nil {
		t.Fatalf("second mark all read: %v", err)
	}
	if updated != 0 {
		t.Fatalf("second call flipped %d, want 0", updated)
	}

	got, _ := svc.List(context.Background(), actor)
	for _, n := range got {
		if !n.IsRead {
			t.Fatalf("notification %s still unread", n.ID)
		}
	}
}

func TestNotificationService_NilActor(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{}, zerolog.Nop())

	if _, err := svc.List(context.Background(), nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.MarkAllRead(context.Background(), nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
