package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamhub/portal-api/internal/core/access"
	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// ReportingService produces the reporting.view-gated aggregate summary.
// The aggregates run over the exact same visibility filter the task list
// uses, so a consumer re-deriving totals from the list sees the same data.
type ReportingService struct {
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewReportingService(tasks ports.TaskRepository, logger zerolog.Logger) *ReportingService {
	return &ReportingService{tasks: tasks, logger: logger}
}

func (s *ReportingService) Summary(ctx context.Context, actor *domain.User) (*ports.ReportingSummary, error) {
	if !access.HasPermissions(actor, []string{domain.PermReportingView}) {
		return nil, domain.ErrForbidden
	}

	visibility := access.VisibleTaskFilter(actor)

	statusCounts, err := s.tasks.CountByStatus(ctx, visibility)
	if err != nil {
		return nil, err
	}
	deptCounts, err := s.tasks.CountOpenByDepartment(ctx, visibility)
	if err != nil {
		return nil, err
	}

	return &ports.ReportingSummary{
		StatusDistribution:    statusCounts,
		OpenTasksByDepartment: deptCounts,
	}, nil
}
