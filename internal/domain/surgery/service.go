package surgery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	types     TypeRepository
	surgeries Repository
}

func NewService(types TypeRepository, surgeries Repository) *Service {
	return &Service{types: types, surgeries: surgeries}
}

// -- Surgery Type --

func (s *Service) CreateType(ctx context.Context, st *SurgeryType) error {
	if st.Name == "" {
		return fmt.Errorf("name is required")
	}
	if st.ExpectedRecoveryDays != nil && *st.ExpectedRecoveryDays <= 0 {
		return fmt.Errorf("expected_recovery_days must be positive")
	}
	return s.types.Create(ctx, st)
}

func (s *Service) GetType(ctx context.Context, id uuid.UUID) (*SurgeryType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *Service) UpdateType(ctx context.Context, st *SurgeryType) error {
	if st.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.types.Update(ctx, st)
}

func (s *Service) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.types.Delete(ctx, id)
}

func (s *Service) ListTypes(ctx context.Context, limit, offset int) ([]*SurgeryType, int, error) {
	return s.types.List(ctx, limit, offset)
}

// -- Surgery --

var validStatuses = map[string]bool{
	StatusActive: true, StatusFinished: true,
}

var validMedicalStatuses = map[string]bool{
	MedicalStatusStable: true, MedicalStatusWarning: true, MedicalStatusCritical: true,
}

func (s *Service) Create(ctx context.Context, sg *Surgery) error {
	if sg.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if sg.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if sg.SurgeryTypeID == uuid.Nil {
		return fmt.Errorf("surgery_type_id is required")
	}
	if sg.SurgeryDate.IsZero() {
		return fmt.Errorf("surgery_date is required")
	}
	if sg.Status == "" {
		sg.Status = StatusActive
	}
	if !validStatuses[sg.Status] {
		return fmt.Errorf("invalid status: %s", sg.Status)
	}
	if sg.MedicalStatus == "" {
		sg.MedicalStatus = MedicalStatusStable
	}
	if !validMedicalStatuses[sg.MedicalStatus] {
		return fmt.Errorf("invalid medical_status: %s", sg.MedicalStatus)
	}
	return s.surgeries.Create(ctx, sg)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	return s.surgeries.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, sg *Surgery) error {
	if sg.Status != "" && !validStatuses[sg.Status] {
		return fmt.Errorf("invalid status: %s", sg.Status)
	}
	if sg.MedicalStatus != "" && !validMedicalStatuses[sg.MedicalStatus] {
		return fmt.Errorf("invalid medical_status: %s", sg.MedicalStatus)
	}
	return s.surgeries.Update(ctx, sg)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.surgeries.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Surgery, int, error) {
	return s.surgeries.List(ctx, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Surgery, int, error) {
	return s.surgeries.ListByDoctor(ctx, doctorID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Surgery, int, error) {
	return s.surgeries.ListByPatient(ctx, patientID, limit, offset)
}

// UpdateMedicalStatus overwrites the rolling recovery indicator. Called by
// the report submission workflow after each verdict; last write wins.
func (s *Service) UpdateMedicalStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validMedicalStatuses[status] {
		return fmt.Errorf("invalid medical_status: %s", status)
	}
	return s.surgeries.UpdateMedicalStatus(ctx, id, status)
}
