package questionnaire

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, q *Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*Question, error)
	Update(ctx context.Context, q *Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySurgeryType(ctx context.Context, surgeryTypeID uuid.UUID) ([]*Question, error)

	AddOption(ctx context.Context, o *Option) error
	GetOptions(ctx context.Context, questionID uuid.UUID) ([]*Option, error)
	UpdateOption(ctx context.Context, o *Option) error
	RemoveOption(ctx context.Context, id uuid.UUID) error
}
