package handler

import (
	"time"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// --- Request / Response types ---

type createTaskRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	AssigneeID   string     `json:"assignee_id"`
	DepartmentID string     `json:"department_id"`
	DueDate      *time.Time `json:"due_date"`
}

// updateTaskRequest is a partial update; absent fields are left untouched.
type updateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	AssigneeID   *string    `json:"assignee_id"`
	DepartmentID *string    `json:"department_id"`
	Progress     *int       `json:"progress" validate:"omitempty,min=0,max=100"`
	DueDate      *time.Time `json:"due_date"`
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listTasksResponse struct {
	Items      []*domain.Task `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type addAttachmentRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	Description string `json:"description"`
	SizeBytes   int64  `json:"size_bytes" validate:"omitempty,min=0"`
}
