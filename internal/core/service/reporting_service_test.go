package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/domain"
)

func TestReportingSummary_RequiresPermission(t *testing.T) {
	svc := NewReportingService(newStubTaskRepo(), zerolog.Nop())

	if _, err := svc.Summary(context.Background(), userWithPerms("user_1")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Summary(context.Background(), nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for nil actor, got %v", err)
	}
}

func TestReportingSummary_ScopedToVisibility(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.add(&domain.Task{ID: "task_1", CreatorID: "user_a", Status: domain.StatusNew, DepartmentID: "dept_1"})
	tasks.add(&domain.Task{ID: "task_2", CreatorID: "user_a", Status: domain.StatusCompleted, DepartmentID: "dept_1"})
	tasks.add(&domain.Task{ID: "task_3", CreatorID: "user_b", Status: domain.StatusInProgress, DepartmentID: "dept_2"})
	svc := NewReportingService(tasks, zerolog.Nop())

	// user_a holds reporting.view but not tasks.view_all: aggregates cover
	// only their own tasks.
	summary, err := svc.Summary(context.Background(), userWithPerms("user_a", domain.PermReportingView))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	var total int64
	for _, sc := range summary.StatusDistribution {
		total += sc.Count
	}
	if total != 2 {
		t.Fatalf("status distribution covers %d tasks, want 2", total)
	}
	if len(summary.OpenTasksByDepartment) != 1 || summary.OpenTasksByDepartment[0].DepartmentID != "dept_1" {
		t.Fatalf("open-by-department = %+v, want only dept_1", summary.OpenTasksByDepartment)
	}

	// With tasks.view_all the same aggregates cover everything.
	wide, err := svc.Summary(context.Background(), userWithPerms("user_c", domain.PermReportingView, domain.PermTasksViewAll))
	if err != nil {
		t.Fatalf("summary view_all: %v", err)
	}
	total = 0
	for _, sc := range wide.StatusDistribution {
		total += sc.Count
	}
	if total != 3 {
		t.Fatalf("view_all distribution covers %d tasks, want 3", total)
	}
}
