package project

import (
	"context"

	"github.com/google/uuid"
)

// Repository supplies projects and their budget lines.  Implementations
// return a pkg/errors AppError with ErrCodeProjectNotFound when the ID is
// unknown.
type Repository interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (Project, error)
	ListBudgetLines(ctx context.Context, projectID uuid.UUID) ([]BudgetLine, error)
}

// TrackingRepository supplies the permit and buyout records for a project.
type TrackingRepository interface {
	ListPermits(ctx context.Context, projectID uuid.UUID) ([]Permit, error)
	ListBuyouts(ctx context.Context, projectID uuid.UUID) ([]Buyout, error)
}
