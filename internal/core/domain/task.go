package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusNew        TaskStatus = "NEW"
	StatusAssigned   TaskStatus = "ASSIGNED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusCancelled  TaskStatus = "CANCELLED"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityNormal TaskPriority = "NORMAL"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// validTransitions defines the allowed state machine transitions.
// COMPLETED and CANCELLED are terminal.
var validTransitions = map[TaskStatus][]TaskStatus{
	StatusNew:        {StatusAssigned, StatusInProgress, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid. Re-applying the current status is always allowed (no-op).
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the known status values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsValid reports whether p is one of the known priority values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// IsOpen reports whether the status counts as open for reporting purposes.
func (s TaskStatus) IsOpen() bool {
	return s == StatusNew || s == StatusAssigned || s == StatusInProgress
}

// Task is the core aggregate. CreatorID is immutable after creation;
// AssigneeID is optional and cleared when the assignee leaves the system.
type Task struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`
	Status       TaskStatus   `json:"status" bson:"status"`
	Priority     TaskPriority `json:"priority" bson:"priority"`
	Progress     int          `json:"progress" bson:"progress"`
	CreatorID    string       `json:"creator_id" bson:"creator_id"`
	AssigneeID   string       `json:"assignee_id,omitempty" bson:"assignee_id,omitempty"`
	DepartmentID string       `json:"department_id,omitempty" bson:"department_id,omitempty"`
	DueDate      *time.Time   `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

// TaskComment belongs to exactly one task and one author. Content is
// immutable once posted.
type TaskComment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TaskID    string    `json:"task_id" bson:"task_id"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// TaskAttachment records a file uploaded against a task. Only the metadata
// lives here; the bytes are kept in external storage keyed by attachment ID.
type TaskAttachment struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	TaskID      string    `json:"task_id" bson:"task_id"`
	UploaderID  string    `json:"uploader_id" bson:"uploader_id"`
	FileName    string    `json:"file_name" bson:"file_name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	SizeBytes   int64     `json:"size_bytes" bson:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Department is a flat organizational unit tasks may belong to.
type Department struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}
