package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// noopNotifier satisfies ports.Notifier where the test doesn't care.
type noopNotifier struct{}

func (noopNotifier) TaskSaved(context.Context, ports.TaskEvent)       {}
func (noopNotifier) CommentSaved(context.Context, ports.CommentEvent) {}

func newTestTaskService(tasks *stubTaskRepo, departments *stubDepartmentRepo, notifier ports.Notifier) *TaskService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return NewTaskService(tasks, departments, notifier, zerolog.Nop())
}

func TestTaskCreate_RequiresPermission(t *testing.T) {
	svc := newTestTaskService(newStubTaskRepo(), newStubDepartmentRepo(), nil)

	_, err := svc.Create(context.Background(), userWithPerms("user_1"), ports.CreateTaskInput{Title: "t"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	task, err := svc.Create(context.Background(), userWithPerms("user_1", domain.PermTasksCreate), ports.CreateTaskInput{Title: "t"})
	if err != nil {
		t.Fatalf("create with permission: %v", err)
	}
	if task.Status != domain.StatusNew {
		t.Errorf("new task status = %s, want %s", task.Status, domain.StatusNew)
	}
	if task.Priority != domain.PriorityNormal {
		t.Errorf("default priority = %s, want %s", task.Priority, domain.PriorityNormal)
	}
	if task.CreatorID != "user_1" {
		t.Errorf("creator = %s, want user_1", task.CreatorID)
	}
}

func TestTaskCreate_ValidatesPriorityAndDepartment(t *testing.T) {
	svc := newTestTaskService(newStubTaskRepo(), newStubDepartmentRepo("dept_1"), nil)
	actor := userWithPerms("user_1", domain.PermTasksCreate)

	_, err := svc.Create(context.Background(), actor, ports.CreateTaskInput{Title: "t", Priority: "SOMEDAY"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad priority, got %v", err)
	}

	_, err = svc.Create(context.Background(), actor, ports.CreateTaskInput{Title: "t", DepartmentID: "dept_missing"})
	if !errors.Is(err, domain.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}

	if _, err := svc.Create(context.Background(), actor, ports.CreateTaskInput{Title: "t", DepartmentID: "dept_1"}); err != nil {
		t.Fatalf("create with known department: %v", err)
	}
}

func TestTaskCreate_NotifiesAssignee(t *testing.T) {
	notifications := &stubNotificationRepo{}
	notifier := newTestNotifier(notifications, newStubUserRepo(), &stubPusher{}, nil, NotifierOptions{})
	svc := newTestTaskService(newStubTaskRepo(), newStubDepartmentRepo(), notifier)

	_, err := svc.Create(context.Background(), userWithPerms("user_1", domain.PermTasksCreate), ports.CreateTaskInput{
		Title:      "t",
		AssigneeID: "user_2",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(notifications.created) != 1 {
		t.Fatalf("expected assignment notification, got %d", len(notifications.created))
	}
	if notifications.created[0].RecipientID != "user_2" {
		t.Errorf("recipient = %s, want user_2", notifications.created[0].RecipientID)
	}
}

func TestTaskGet_VisibilityReadsAsAbsent(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_owner", Status: domain.StatusNew})
	svc := newTestTaskService(tasks, newStubDepartmentRepo(), nil)

	// Unrelated user: invisible tasks look like missing tasks.
	if _, err := svc.Get(context.Background(), userWithPerms("user_other"), "task_1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for invisible task, got %v", err)
	}

	// Creator sees it.
	if _, err := svc.Get(context.Background(), userWithPerms("user_owner"), "task_1"); err != nil {
		t.Fatalf("creator get: %v", err)
	}

	// tasks.view_all sees everything.
	if _, err := svc.Get(context.Background(), userWithPerms("user_other", domain.PermTasksViewAll), "task_1"); err != nil {
		t.Fatalf("view_all get: %v", err)
	}
}

func TestTaskList_FiltersByVisibility(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_a", Status: domain.StatusNew})
	tasks.add(&domain.Task{ID: "task_2", CreatorID: "user_b", AssigneeID: "user_a", Status: domain.StatusNew})
	tasks.add(&domain.Task{ID: "task_3", CreatorID: "user_b", Status: domain.StatusNew})
	svc := newTestTaskService(tasks, newStubDepartmentRepo(), nil)

	page, err := svc.List(context.Background(), userWithPerms("user_a"), ports.ListTasksInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("user_a sees %d tasks, want 2 (creator of one, assignee of another)", page.Total)
	}

	all, err := svc.List(context.Background(), userWithPerms("user_c", domain.PermTasksViewAll), ports.ListTasksInput{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("view_all sees %d tasks, want 3", all.Total)
	}
}

func TestTaskUpdate_OwnershipGate(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_owner", AssigneeID: "user_assignee", Status: domain.StatusAssigned})
	svc := newTestTaskService(tasks, newStubDepartmentRepo(), nil)

	title := "renamed"
	if _, err := svc.Update(context.Background(), userWithPerms("user_other"), "task_1", ports.UpdateTaskInput{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	for _, actor := range []*domain.User{
		userWithPerms("user_owner"),
		userWithPerms("user_assignee"),
		adminUser("user_admin"),
	} {
		if _, err := svc.Update(context.Background(), actor, "task_1", ports.UpdateTaskInput{Title: &title}); err != nil {
			t.Fatalf("update as %s: %v", actor.ID, err)
		}
	}
}

func TestTaskUpdate_ProgressRange(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_owner", Status: domain.StatusInProgress})
	svc := newTestTaskService(tasks, newStubDepartmentRepo(), nil)
	actor := userWithPerms("user_owner")

	for _, bad := range []int{-1, 101} {
		p := bad
		_, err := svc.Update(context.Background(), actor, "task_1", ports.UpdateTaskInput{Progress: &p})
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != "progress" {
			t.Fatalf("progress %d: expected progress ValidationError, got %v", bad, err)
		}
	}

	p := 100
	task, err := svc.Update(context.Background(), actor, "task_1", ports.UpdateTaskInput{Progress: &p})
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if task.Progress != 100 {
		t.Errorf("progress = %d, want 100", task.Progress)
	}
}

func TestChangeStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    domain.TaskStatus
		to      domain.TaskStatus
		allowed bool
	}{
		{domain.StatusNew, domain.StatusAssigned, true},
		{domain.StatusNew, domain.StatusInProgress, true},
		{domain.StatusNew, domain.StatusCancelled, true},
		{domain.StatusNew, domain.StatusCompleted, false},
		{domain.StatusAssigned, domain.StatusCompleted, true},
		{domain.StatusInProgress, domain.StatusCompleted, true},
		{domain.StatusInProgress, domain.StatusAssigned, false},
		{domain.StatusCompleted, domain.StatusInProgress, false},
		{domain.StatusCancelled, domain.StatusNew, false},
	}

	for _, tc := range cases {
		tasks := newStubTaskRepo()
		tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_owner", Status: tc.from})
		svc := newTestTaskService(tasks, newStubDepartmentRepo(), nil)

		_, err := svc.ChangeStatus(context.Background(), userWithPerms("user_owner"), "task_1", string(tc.to))
		if tc.allowed && err != nil {
			t.Errorf("%s→%s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.allowed && !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("%s→%s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
	}
}

func TestChangeStatus_SameStatusIsNoOp(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_owner", Status: domain.StatusCompleted})
	svc := newTestTaskService(tasks, newStubDepartmentRepo(), nil)

	task, err := svc.ChangeStatus(context.Background(), userWithPerms("user_owner"), "task_1", string(domain.StatusCompleted))
	if err != nil {
		t.Fatalf("same-status change must be a no-op, got %v", err)
	}
	if task.Status != domain.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", task.Status)
	}
}

func TestChangeStatus_UnknownStatus(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_owner", Status: domain.StatusNew})
	svc := newTestTaskService(tasks, newStubDepartmentRepo(), nil)

	_, err := svc.ChangeStatus(context.Background(), userWithPerms("user_owner"), "task_1", "PAUSED")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}
}
