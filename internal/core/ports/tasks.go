package ports

import (
	"context"
	"time"

	"github.com/teamhub/portal-api/internal/core/access"
	"github.com/teamhub/portal-api/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
// Visibility is always supplied by the service layer; the repository must
// honor it before applying any other criterion.
type ListTasksFilter struct {
	Visibility   access.TaskFilter
	Status       string // optional: filter by task status
	DepartmentID string // optional: filter by department
	Search       string // optional: partial match on title
	Page         int    // 1-based
	Limit        int    // max rows per page (capped at 100 by service)
}

// StatusCount is one bucket of the status distribution aggregate.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DepartmentCount is one bucket of the open-tasks-by-department aggregate.
type DepartmentCount struct {
	DepartmentID string `json:"department_id"`
	Count        int64  `json:"count"`
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// List returns a page of tasks matching filter and the total count.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// CountByStatus groups the tasks matching visibility by status.
	CountByStatus(ctx context.Context, visibility access.TaskFilter) ([]StatusCount, error)
	// CountOpenByDepartment counts open tasks per department within visibility.
	CountOpenByDepartment(ctx context.Context, visibility access.TaskFilter) ([]DepartmentCount, error)
}

// CreateTaskInput carries all data needed to create a new task.
type CreateTaskInput struct {
	Title        string
	Description  string
	Priority     string
	AssigneeID   string
	DepartmentID string
	DueDate      *time.Time
}

// UpdateTaskInput is a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Priority     *string
	AssigneeID   *string
	DepartmentID *string
	Progress     *int
	DueDate      *time.Time
}

// ListTasksInput carries the list endpoint parameters.
type ListTasksInput struct {
	Status       string
	DepartmentID string
	Search       string
	Page         int
	Limit        int
}

// TaskPage is returned by List.
type TaskPage struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService defines use-case operations for tasks. Every operation takes
// the acting user with roles hydrated; authorization happens here, not in
// the transport layer.
type TaskService interface {
	Create(ctx context.Context, actor *domain.User, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error)
	List(ctx context.Context, actor *domain.User, in ListTasksInput) (*TaskPage, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateTaskInput) (*domain.Task, error)
	ChangeStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.Task, error)
}
