package questionnaire

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validInputTypes = map[string]bool{
	InputScale: true, InputBoolean: true, InputSelect: true,
	InputMultiselect: true, InputText: true,
}

var validConditions = map[string]bool{
	CondEq: true, CondNeq: true, CondGt: true,
	CondGte: true, CondLt: true, CondLte: true,
}

// GetQuestionnaire returns the active questions for a surgery type, ordered
// for display, with options loaded and dependency references resolved.
func (s *Service) GetQuestionnaire(ctx context.Context, surgeryTypeID uuid.UUID) ([]*Question, error) {
	questions, err := s.repo.ListBySurgeryType(ctx, surgeryTypeID)
	if err != nil {
		return nil, err
	}
	ResolveDependencies(questions)
	return questions, nil
}

func (s *Service) CreateQuestion(ctx context.Context, q *Question) error {
	if err := s.validateQuestion(q); err != nil {
		return err
	}
	q.IsActive = true
	return s.repo.Create(ctx, q)
}

func (s *Service) GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateQuestion(ctx context.Context, q *Question) error {
	if err := s.validateQuestion(q); err != nil {
		return err
	}
	return s.repo.Update(ctx, q)
}

func (s *Service) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) validateQuestion(q *Question) error {
	if q.SurgeryTypeID == uuid.Nil {
		return fmt.Errorf("surgery_type_id is required")
	}
	if q.Text == "" {
		return fmt.Errorf("text is required")
	}
	if !validInputTypes[q.InputType] {
		return fmt.Errorf("invalid input_type: %s", q.InputType)
	}
	if c := q.Metadata.DependsOnCondition; c != "" && !validConditions[c] {
		return fmt.Errorf("invalid depends_on_condition: %s", c)
	}
	if q.Metadata.DependsOnCondition != "" && q.Metadata.DependsOnQuestionText == "" {
		return fmt.Errorf("depends_on_condition requires depends_on_question_text")
	}
	return nil
}

func (s *Service) AddOption(ctx context.Context, o *Option) error {
	if o.QuestionID == uuid.Nil {
		return fmt.Errorf("question_id is required")
	}
	if o.Value == "" {
		return fmt.Errorf("value is required")
	}
	if o.Label == "" {
		return fmt.Errorf("label is required")
	}
	q, err := s.repo.GetByID(ctx, o.QuestionID)
	if err != nil {
		return err
	}
	if q == nil {
		return fmt.Errorf("question not found")
	}
	if q.InputType == InputScale || q.InputType == InputText {
		return fmt.Errorf("%s questions do not take options", q.InputType)
	}
	return s.repo.AddOption(ctx, o)
}

func (s *Service) GetOptions(ctx context.Context, questionID uuid.UUID) ([]*Option, error) {
	return s.repo.GetOptions(ctx, questionID)
}

func (s *Service) UpdateOption(ctx context.Context, o *Option) error {
	if o.Value == "" {
		return fmt.Errorf("value is required")
	}
	if o.Label == "" {
		return fmt.Errorf("label is required")
	}
	return s.repo.UpdateOption(ctx, o)
}

func (s *Service) RemoveOption(ctx context.Context, id uuid.UUID) error {
	return s.repo.RemoveOption(ctx, id)
}
