package service

import (
	"context"
	"fmt"

	"github.com/teamhub/portal-api/internal/core/access"
	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// In-memory stand-ins for the Mongo repositories, the live pusher and the
// dedup store. Each records enough state for assertions.

type stubUserRepo struct {
	users        map[string]*domain.User // by ID
	byLocalPart  map[string][]*domain.User
	localPartErr error
	assigned     map[string][]string // userID → roleIDs
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:       make(map[string]*domain.User),
		byLocalPart: make(map[string][]*domain.User),
		assigned:    make(map[string][]string),
	}
}

func (s *stubUserRepo) add(u *domain.User) *domain.User {
	s.users[u.ID] = u
	return u
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := *user
	created.ID = fmt.Sprintf("user_%d", len(s.users)+1)
	s.users[created.ID] = &created
	return &created, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) FindByEmailLocalPart(_ context.Context, localPart string) ([]*domain.User, error) {
	if s.localPartErr != nil {
		return nil, s.localPartErr
	}
	return s.byLocalPart[localPart], nil
}

func (s *stubUserRepo) ListActive(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubUserRepo) AssignRole(_ context.Context, userID, roleID string) error {
	if _, ok := s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	s.assigned[userID] = append(s.assigned[userID], roleID)
	return nil
}

type stubNotificationRepo struct {
	created   []*domain.Notification
	createErr error
}

func (s *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	stored := *n
	stored.ID = fmt.Sprintf("notif_%d", len(s.created)+1)
	s.created = append(s.created, &stored)
	return nil
}

func (s *stubNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range s.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotificationRepo) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	var flipped int64
	for _, n := range s.created {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			flipped++
		}
	}
	return flipped, nil
}

type stubTaskRepo struct {
	tasks map[string]*domain.Task
	seq   int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (s *stubTaskRepo) add(t *domain.Task) *domain.Task {
	s.tasks[t.ID] = t
	return t
}

func (s *stubTaskRepo) Create(_ context.Context, task *domain.Task) error {
	s.seq++
	task.ID = fmt.Sprintf("task_%d", s.seq)
	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

func (s *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := s.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

func (s *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	var out []*domain.Task
	for _, t := range s.tasks {
		if !f.Visibility.Matches(t) {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (s *stubTaskRepo) CountByStatus(_ context.Context, v access.TaskFilter) ([]ports.StatusCount, error) {
	byStatus := make(map[string]int64)
	for _, t := range s.tasks {
		if v.Matches(t) {
			byStatus[string(t.Status)]++
		}
	}
	var out []ports.StatusCount
	for status, count := range byStatus {
		out = append(out, ports.StatusCount{Status: status, Count: count})
	}
	return out, nil
}

func (s *stubTaskRepo) CountOpenByDepartment(_ context.Context, v access.TaskFilter) ([]ports.DepartmentCount, error) {
	byDept := make(map[string]int64)
	for _, t := range s.tasks {
		if v.Matches(t) && t.Status.IsOpen() && t.DepartmentID != "" {
			byDept[t.DepartmentID]++
		}
	}
	var out []ports.DepartmentCount
	for dept, count := range byDept {
		out = append(out, ports.DepartmentCount{DepartmentID: dept, Count: count})
	}
	return out, nil
}

type stubDepartmentRepo struct {
	departments map[string]*domain.Department
}

func newStubDepartmentRepo(ids ...string) *stubDepartmentRepo {
	s := &stubDepartmentRepo{departments: make(map[string]*domain.Department)}
	for _, id := range ids {
		s.departments[id] = &domain.Department{ID: id, Name: "dept " + id}
	}
	return s
}

func (s *stubDepartmentRepo) Create(_ context.Context, d *domain.Department) (*domain.Department, error) {
	created := *d
	created.ID = fmt.Sprintf("dept_%d", len(s.departments)+1)
	s.departments[created.ID] = &created
	return &created, nil
}

func (s *stubDepartmentRepo) List(_ context.Context) ([]*domain.Department, error) {
	var out []*domain.Department
	for _, d := range s.departments {
		out = append(out, d)
	}
	return out, nil
}

func (s *stubDepartmentRepo) FindByID(_ context.Context, id string) (*domain.Department, error) {
	d, ok := s.departments[id]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	return d, nil
}

type stubCommentRepo struct {
	comments []*domain.TaskComment
}

func (s *stubCommentRepo) Create(_ context.Context, comment *domain.TaskComment) error {
	stored := *comment
	stored.ID = fmt.Sprintf("comment_%d", len(s.comments)+1)
	comment.ID = stored.ID
	s.comments = append(s.comments, &stored)
	return nil
}

func (s *stubCommentRepo) ListByTask(_ context.Context, taskID string) ([]*domain.TaskComment, error) {
	var out []*domain.TaskComment
	for _, c := range s.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubAttachmentRepo struct {
	attachments []*domain.TaskAttachment
	createErr   error
}

func (s *stubAttachmentRepo) Create(_ context.Context, attachment *domain.TaskAttachment) error {
	if s.createErr != nil {
		return s.createErr
	}
	stored := *attachment
	stored.ID = fmt.Sprintf("attachment_%d", len(s.attachments)+1)
	attachment.ID = stored.ID
	s.attachments = append(s.attachments, &stored)
	return nil
}

func (s *stubAttachmentRepo) ListByTask(_ context.Context, taskID string) ([]*domain.TaskAttachment, error) {
	var out []*domain.TaskAttachment
	for _, a := range s.attachments {
		if a.TaskID == taskID {
			out = append(out, a)
		}
	}
	return out, nil
}

// stubPusher records every live message synchronously.
type stubPusher struct {
	pushed []ports.LiveMessage
}

func (s *stubPusher) Push(msg ports.LiveMessage) {
	s.pushed = append(s.pushed, msg)
}

// stubDedup is a map-backed DedupChecker. checkErr simulates an unavailable
// dedup store.
type stubDedup struct {
	keys     map[string]struct{}
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{keys: make(map[string]struct{})}
}

func (s *stubDedup) IsDuplicate(_ context.Context, key string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	_, ok := s.keys[key]
	return ok, nil
}

func (s *stubDedup) Mark(_ context.Context, key string) error {
	s.keys[key] = struct{}{}
	return nil
}

// Test fixture helpers.

func userWithPerms(id string, perms ...string) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    id + "@example.com",
		IsActive: true,
		Roles:    []domain.Role{{ID: "role_" + id, Name: "Staff", Permissions: perms}},
	}
}

func adminUser(id string) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    id + "@example.com",
		IsActive: true,
		Roles:    []domain.Role{{ID: "role_admin", Name: domain.RoleAdministrator}},
	}
}
