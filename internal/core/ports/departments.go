package ports

import (
	"context"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// DepartmentRepository defines persistence operations for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, d *domain.Department) (*domain.Department, error)
	List(ctx context.Context) ([]*domain.Department, error)
	FindByID(ctx context.Context, id string) (*domain.Department, error)
}
