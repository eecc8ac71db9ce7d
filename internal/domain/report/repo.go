package report

import (
	"context"

	"github.com/google/uuid"
)

type ReportRepository interface {
	// Create returns ErrDuplicateReport when a row for the same surgery
	// and calendar date already exists.
	Create(ctx context.Context, r *DailyReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*DailyReport, error)
	ListBySurgery(ctx context.Context, surgeryID uuid.UUID, limit, offset int) ([]*DailyReport, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DailyReport, int, error)
}

type AlertRepository interface {
	Create(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)
	ListBySurgery(ctx context.Context, surgeryID uuid.UUID, unresolvedOnly bool, limit, offset int) ([]*Alert, int, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}
