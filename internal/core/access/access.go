// Package access decides who may see or modify what. All checks are pure
// functions over a user whose roles and permissions have already been loaded
// by the caller — there is no hidden lookup state.
package access

import "github.com/teamhub/portal-api/internal/core/domain"

// HasPermissions reports whether required is a subset of the union of
// permission names across all of the user's roles. An empty requirement is
// always satisfied; a nil (unauthenticated) user never is.
func HasPermissions(user *domain.User, required []string) bool {
	if user == nil {
		return false
	}
	if len(required) == 0 {
		return true
	}

	granted := make(map[string]struct{})
	for _, role := range user.Roles {
		for _, perm := range role.Permissions {
			granted[perm] = struct{}{}
		}
	}

	for _, perm := range required {
		if _, ok := granted[perm]; !ok {
			return false
		}
	}
	return true
}

// CanActOnTask reports whether the user may mutate (update, change status)
// the task: holders of the reserved Administrator role always may, otherwise
// only the task's creator or current assignee. Read access is governed by
// VisibleTaskFilter, not this gate.
func CanActOnTask(user *domain.User, task *domain.Task) bool {
	if user == nil || task == nil {
		return false
	}
	if user.HasRole(domain.RoleAdministrator) {
		return true
	}
	if task.CreatorID == user.ID {
		return true
	}
	return task.AssigneeID != "" && task.AssigneeID == user.ID
}

// TaskFilter is the predicate defining which tasks a user may enumerate.
// Exactly one of the three modes applies: match everything, match nothing,
// or match tasks created by or assigned to UserID.
type TaskFilter struct {
	All    bool
	None   bool
	UserID string
}

// VisibleTaskFilter derives the task visibility predicate for a user.
// Users holding tasks.view_all see everything; a nil user sees nothing;
// everyone else sees tasks they created or are assigned to. The same filter
// backs both list endpoints and the reporting summary so downstream
// consumers re-deriving totals get consistent data.
func VisibleTaskFilter(user *domain.User) TaskFilter {
	if user == nil {
		return TaskFilter{None: true}
	}
	if HasPermissions(user, []string{domain.PermTasksViewAll}) {
		return TaskFilter{All: true}
	}
	return TaskFilter{UserID: user.ID}
}

// Matches evaluates the predicate against a single task.
func (f TaskFilter) Matches(task *domain.Task) bool {
	if task == nil || f.None {
		return false
	}
	if f.All {
		return true
	}
	return task.CreatorID == f.UserID || (task.AssigneeID != "" && task.AssigneeID == f.UserID)
}
