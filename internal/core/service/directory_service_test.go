package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

type stubRoleRepo struct {
	roles map[string]*domain.Role // by name
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*domain.Role)}
}

func (s *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if _, ok := s.roles[role.Name]; ok {
		return nil, domain.ErrRoleExists
	}
	created := *role
	created.ID = fmt.Sprintf("role_%d", len(s.roles)+1)
	s.roles[created.Name] = &created
	return &created, nil
}

func (s *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, r := range s.roles {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	r, ok := s.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return r, nil
}

type stubPermissionRepo struct {
	upserted []string
}

func (s *stubPermissionRepo) Upsert(_ context.Context, perm domain.Permission) error {
	s.upserted = append(s.upserted, perm.Name)
	return nil
}

func (s *stubPermissionRepo) List(_ context.Context) ([]domain.Permission, error) {
	out := make([]domain.Permission, 0, len(s.upserted))
	for _, name := range s.upserted {
		out = append(out, domain.Permission{Name: name})
	}
	return out, nil
}

func TestCreateRole_RequiresManagePermission(t *testing.T) {
	svc := NewDirectoryService(newStubUserRepo(), newStubRoleRepo(), &stubPermissionRepo{}, zerolog.Nop())

	_, err := svc.CreateRole(context.Background(), userWithPerms("user_1"), ports.CreateRoleInput{Name: "Editors"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateRole_RegistersPermissions(t *testing.T) {
	perms := &stubPermissionRepo{}
	svc := NewDirectoryService(newStubUserRepo(), newStubRoleRepo(), perms, zerolog.Nop())
	actor := userWithPerms("user_1", domain.PermRolesManage)

	role, err := svc.CreateRole(context.Background(), actor, ports.CreateRoleInput{
		Name:        "Editors",
		Permissions: []string{domain.PermTasksCreate, domain.PermReportingView},
	})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	if role.ID == "" {
		t.Errorf("role ID not assigned")
	}
	if len(perms.upserted) != 2 {
		t.Errorf("registered %d permissions, want 2", len(perms.upserted))
	}

	if _, err := svc.CreateRole(context.Background(), actor, ports.CreateRoleInput{Name: "Editors"}); !errors.Is(err, domain.ErrRoleExists) {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}
}

func TestAssignRole(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "user_target", Email: "t@example.com", IsActive: true})
	roles := newStubRoleRepo()
	svc := NewDirectoryService(users, roles, &stubPermissionRepo{}, zerolog.Nop())
	actor := userWithPerms("user_admin", domain.PermRolesManage)

	if _, err := svc.CreateRole(context.Background(), actor, ports.CreateRoleInput{Name: "Editors"}); err != nil {
		t.Fatalf("create role: %v", err)
	}

	if err := svc.AssignRole(context.Background(), actor, "user_target", "Editors"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(users.assigned["user_target"]) != 1 {
		t.Fatalf("role not recorded on user")
	}

	if err := svc.AssignRole(context.Background(), actor, "user_target", "Ghosts"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if err := svc.AssignRole(context.Background(), actor, "user_missing", "Editors"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.AssignRole(context.Background(), userWithPerms("user_pleb"), "user_target", "Editors"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
