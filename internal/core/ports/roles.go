package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// RoleRepository holds the role→permission-set assignments (leaf data of the
// access control model).
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}

// PermissionRepository is the registry of known atomic capabilities.
type PermissionRepository interface {
	// Upsert registers a permission name, creating it if unseen.
	Upsert(ctx context.Context, perm domain.Permission) error
	List(ctx context.Context) ([]domain.Permission, error)
}

// CreateRoleInput carries the data for a new role.
type CreateRoleInput struct {
	Name        string
	Permissions []string
}

// DirectoryService covers user directory listing and role administration.
// Mutating operations require the roles.manage permission.
type DirectoryService interface {
	ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	CreateRole(ctx context.Context, actor *domain.User, in CreateRoleInput) (*domain.Role, error)
	ListRoles(ctx context.Context, actor *domain.User) ([]*domain.Role, error)
	AssignRole(ctx context.Context, actor *domain.User, userID, roleName string) error
}
