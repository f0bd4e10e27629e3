package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// ReportingSummary is the aggregate view returned by the reporting endpoint.
// Simple group-by counts; both aggregates are computed over the caller's
// visible task set.
type ReportingSummary struct {
	StatusDistribution    []StatusCount     `json:"task_status_distribution"`
	OpenTasksByDepartment []DepartmentCount `json:"open_tasks_by_department"`
}

// ReportingService exposes the reporting.view-gated summary.
type ReportingService interface {
	Summary(ctx context.Context, actor *domain.User) (*ReportingSummary, error)
}
