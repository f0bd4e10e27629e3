package access

import (
	"testing"

	"github.com/teamhub/portal-api/internal/core/domain"
)

func userWithPerms(id string, perms ...string) *domain.User {
	return &domain.User{
		ID:    id,
		Roles: []domain.Role{{Name: "Staff", Permissions: perms}},
	}
}

func TestHasPermissions_EmptyRequirementAlwaysTrue(t *testing.T) {
	u := &domain.User{ID: "u1"} // no roles at all
	if !HasPermissions(u, nil) {
		t.Fatal("empty requirement should always be satisfied")
	}
	if !HasPermissions(u, []string{}) {
		t.Fatal("empty requirement should always be satisfied")
	}
}

func TestHasPermissions_NilUserAlwaysFalse(t *testing.T) {
	if HasPermissions(nil, nil) {
		t.Fatal("nil user must never pass, even with empty requirement")
	}
	if HasPermissions(nil, []string{domain.PermTasksCreate}) {
		t.Fatal("nil user must never pass")
	}
}

func TestHasPermissions_SubsetOfRoleUnion(t *testing.T) {
	u := &domain.User{
		ID: "u1",
		Roles: []domain.Role{
			{Name: "Editor", Permissions: []string{domain.PermTasksCreate}},
			{Name: "Analyst", Permissions: []string{domain.PermReportingView, domain.PermTasksCreate}},
		},
	}

	if !HasPermissions(u, []string{domain.PermTasksCreate}) {
		t.Error("permission from first role should be granted")
	}
	if !HasPermissions(u, []string{domain.PermTasksCreate, domain.PermReportingView}) {
		t.Error("union across roles should satisfy multi-permission requirement")
	}
	if HasPermissions(u, []string{domain.PermTasksCreate, domain.PermTasksViewAll}) {
		t.Error("missing permission should fail the whole requirement")
	}
}

func TestCanActOnTask(t *testing.T) {
	task := &domain.Task{ID: "t1", CreatorID: "creator", AssigneeID: "assignee"}

	cases := []struct {
		name string
		user *domain.User
		want bool
	}{
		{"nil user", nil, false},
		{"creator", &domain.User{ID: "creator"}, true},
		{"assignee", &domain.User{ID: "assignee"}, true},
		{"administrator", &domain.User{ID: "other", Roles: []domain.Role{{Name: domain.RoleAdministrator}}}, true},
		{"lowercase admin role is not Administrator", &domain.User{ID: "other", Roles: []domain.Role{{Name: "administrator"}}}, false},
		{"unrelated user", &domain.User{ID: "other"}, false},
	}
	for _, tc := range cases {
		if got := CanActOnTask(tc.user, task); got != tc.want {
			t.Errorf("%s: CanActOnTask = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanActOnTask_EmptyAssigneeDoesNotMatchEmptyID(t *testing.T) {
	task := &domain.Task{ID: "t1", CreatorID: "creator"} // unassigned
	u := &domain.User{ID: ""}
	if CanActOnTask(u, task) {
		t.Fatal("user with empty ID must not match an unassigned task")
	}
}

func TestVisibleTaskFilter_NilUserMatchesNothing(t *testing.T) {
	f := VisibleTaskFilter(nil)
	if !f.None {
		t.Fatal("nil user should produce a match-none filter")
	}
	if f.Matches(&domain.Task{ID: "t1", CreatorID: "a"}) {
		t.Fatal("match-none filter matched a task")
	}
}

func TestVisibleTaskFilter_ViewAllMatchesEverything(t *testing.T) {
	f := VisibleTaskFilter(userWithPerms("u1", domain.PermTasksViewAll))
	if !f.All {
		t.Fatal("tasks.view_all should produce a match-all filter")
	}
	if !f.Matches(&domain.Task{ID: "t1", CreatorID: "someone-else"}) {
		t.Fatal("match-all filter rejected a task")
	}
}

func TestVisibleTaskFilter_OwnOrAssigned(t *testing.T) {
	f := VisibleTaskFilter(&domain.User{ID: "u1"})

	if !f.Matches(&domain.Task{ID: "t1", CreatorID: "u1"}) {
		t.Error("creator should see own task")
	}
	if !f.Matches(&domain.Task{ID: "t2", CreatorID: "other", AssigneeID: "u1"}) {
		t.Error("assignee should see assigned task")
	}
	if f.Matches(&domain.Task{ID: "t3", CreatorID: "other", AssigneeID: "someone"}) {
		t.Error("unrelated task should be invisible")
	}
}

// Granting tasks.view_all must strictly enlarge the visible set: everything
// visible before stays visible after.
func TestVisibleTaskFilter_ViewAllIsMonotonic(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "t1", CreatorID: "u1"},
		{ID: "t2", CreatorID: "x", AssigneeID: "u1"},
		{ID: "t3", CreatorID: "x", AssigneeID: "y"},
		{ID: "t4", CreatorID: "y"},
	}

	before := VisibleTaskFilter(&domain.User{ID: "u1"})
	after := VisibleTaskFilter(userWithPerms("u1", domain.PermTasksViewAll))

	for _, task := range tasks {
		if before.Matches(task) && !after.Matches(task) {
			t.Errorf("task %s visible before grant but not after", task.ID)
		}
	}
}
