package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/api/metrics"
	"github.com/teamhub/portal-api/internal/core/access"
	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

const maxListLimit = 100

// TaskService implements task use cases. Authorization lives here: creation
// requires tasks.create, mutation requires the Administrator role or
// creator/assignee ownership, reads go through the visibility filter.
type TaskService struct {
	tasks       ports.TaskRepository
	departments ports.DepartmentRepository
	notifier    ports.Notifier
	logger      zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	departments ports.DepartmentRepository,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, departments: departments, notifier: notifier, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, actor *domain.User, in ports.CreateTaskInput) (*domain.Task, error) {
	if !access.HasPermissions(actor, []string{domain.PermTasksCreate}) {
		return nil, domain.ErrForbidden
	}

	priority := domain.TaskPriority(in.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.IsValid() {
		return nil, &domain.ValidationError{Field: "priority", Reason: "unknown priority value"}
	}
	if in.DepartmentID != "" {
		if _, err := s.departments.FindByID(ctx, in.DepartmentID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:        in.Title,
		Description:  in.Description,
		Status:       domain.StatusNew,
		Priority:     priority,
		CreatorID:    actor.ID,
		AssigneeID:   in.AssigneeID,
		DepartmentID: in.DepartmentID,
		DueDate:      in.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}
	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	s.logger.Info().Str("task_id", task.ID).Str("creator_id", actor.ID).Msg("task created")

	// Post-commit hook: assignment notification when an assignee was set at
	// creation time.
	s.notifier.TaskSaved(ctx, ports.TaskEvent{Task: task, Created: true})

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Invisible tasks read as absent, the same way the list endpoint hides them.
	if !access.VisibleTaskFilter(actor).Matches(task) {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, actor *domain.User, in ports.ListTasksInput) (*ports.TaskPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	items, total, err := s.tasks.List(ctx, ports.ListTasksFilter{
		Visibility:   access.VisibleTaskFilter(actor),
		Status:       in.Status,
		DepartmentID: in.DepartmentID,
		Search:       in.Search,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.TaskPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *TaskService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanActOnTask(actor, task) {
		return nil, domain.ErrForbidden
	}

	prevAssignee := task.AssigneeID

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Priority != nil {
		priority := domain.TaskPriority(*in.Priority)
		if !priority.IsValid() {
			return nil, &domain.ValidationError{Field: "priority", Reason: "unknown priority value"}
		}
		task.Priority = priority
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, &domain.ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
		}
		task.Progress = *in.Progress
	}
	if in.AssigneeID != nil {
		task.AssigneeID = *in.AssigneeID
	}
	if in.DepartmentID != nil {
		if *in.DepartmentID != "" {
			if _, err := s.departments.FindByID(ctx, *in.DepartmentID); err != nil {
				return nil, err
			}
		}
		task.DepartmentID = *in.DepartmentID
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	s.notifier.TaskSaved(ctx, ports.TaskEvent{Task: task, Created: false, PrevAssigneeID: prevAssignee})

	return task, nil
}

func (s *TaskService) ChangeStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanActOnTask(actor, task) {
		return nil, domain.ErrForbidden
	}

	next := domain.TaskStatus(status)
	if !next.IsValid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status value"}
	}
	if next == task.Status {
		return task, nil
	}
	if !task.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, next)
	}

	task.Status = next
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", string(next)).
		Str("actor_id", actor.ID).
		Msg("task status changed")

	s.notifier.TaskSaved(ctx, ports.TaskEvent{Task: task, Created: false, PrevAssigneeID: task.AssigneeID})

	return task, nil
}
