package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validSexes = map[string]bool{
	"male": true, "female": true, "other": true,
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.repo.ListByDoctor(ctx, doctorID, limit, offset)
}

func validate(p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		return fmt.Errorf("invalid email: %s", *p.Email)
	}
	if p.Sex != nil && !validSexes[*p.Sex] {
		return fmt.Errorf("invalid sex: %s", *p.Sex)
	}
	return nil
}
