package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// UserRepository defines persistence operations for users. All lookups
// return users with their roles (and role permissions) hydrated, so
// permission checks never reach back into the store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailLocalPart returns every user whose email local-part (the
	// substring before "@") equals localPart exactly. Used for mention
	// resolution; multiple hits mean the mention is ambiguous.
	FindByEmailLocalPart(ctx context.Context, localPart string) ([]*domain.User, error)
	ListActive(ctx context.Context) ([]*domain.User, error)
	AssignRole(ctx context.Context, userID, roleID string) error
}
