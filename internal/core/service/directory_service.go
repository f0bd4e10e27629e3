package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/access"
	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// DirectoryService covers the user directory and role administration.
type DirectoryService struct {
	users       ports.UserRepository
	roles       ports.RoleRepository
	permissions ports.PermissionRepository
	logger      zerolog.Logger
}

func NewDirectoryService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	permissions ports.PermissionRepository,
	logger zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{users: users, roles: roles, permissions: permissions, logger: logger}
}

func (s *DirectoryService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	return s.users.ListActive(ctx)
}

func (s *DirectoryService) CreateRole(ctx context.Context, actor *domain.User, in ports.CreateRoleInput) (*domain.Role, error) {
	if !access.HasPermissions(actor, []string{domain.PermRolesManage}) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	role, err := s.roles.Create(ctx, &domain.Role{Name: in.Name, Permissions: in.Permissions})
	if err != nil {
		return nil, err
	}

	// Keep the permission registry in sync with what roles reference.
	// Registry failures don't invalidate the role itself.
	for _, perm := range in.Permissions {
		if err := s.permissions.Upsert(ctx, domain.Permission{Name: perm}); err != nil {
			s.logger.Warn().Err(err).Str("permission", perm).Msg("failed to register permission")
		}
	}

	s.logger.Info().Str("role", role.Name).Int("permissions", len(role.Permissions)).Msg("role created")
	return role, nil
}

func (s *DirectoryService) ListRoles(ctx context.Context, actor *domain.User) ([]*domain.Role, error) {
	if !access.HasPermissions(actor, []string{domain.PermRolesManage}) {
		return nil, domain.ErrForbidden
	}
	return s.roles.List(ctx)
}

func (s *DirectoryService) AssignRole(ctx context.Context, actor *domain.User, userID, roleName string) error {
	if !access.HasPermissions(actor, []string{domain.PermRolesManage}) {
		return domain.ErrForbidden
	}

	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.users.AssignRole(ctx, userID, role.ID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("role", roleName).Str("actor_id", actor.ID).Msg("role assigned")
	return nil
}
