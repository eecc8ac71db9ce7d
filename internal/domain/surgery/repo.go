package surgery

import (
	"context"

	"github.com/google/uuid"
)

type TypeRepository interface {
	Create(ctx context.Context, st *SurgeryType) error
	GetByID(ctx context.Context, id uuid.UUID) (*SurgeryType, error)
	Update(ctx context.Context, st *SurgeryType) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*SurgeryType, int, error)
}

type Repository interface {
	Create(ctx context.Context, s *Surgery) error
	GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error)
	Update(ctx context.Context, s *Surgery) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Surgery, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Surgery, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Surgery, int, error)
	UpdateMedicalStatus(ctx context.Context, id uuid.UUID, status string) error
}
