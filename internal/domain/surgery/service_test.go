package surgery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockTypeRepo struct {
	types map[uuid.UUID]*SurgeryType
}

func newMockTypeRepo() *mockTypeRepo {
	return &mockTypeRepo{types: make(map[uuid.UUID]*SurgeryType)}
}

func (m *mockTypeRepo) Create(_ context.Context, st *SurgeryType) error {
	st.ID = uuid.New()
	m.types[st.ID] = st
	return nil
}

func (m *mockTypeRepo) GetByID(_ context.Context, id uuid.UUID) (*SurgeryType, error) {
	return m.types[id], nil
}

func (m *mockTypeRepo) Update(_ context.Context, st *SurgeryType) error {
	m.types[st.ID] = st
	return nil
}

func (m *mockTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.types, id)
	return nil
}

func (m *mockTypeRepo) List(_ context.Context, _, _ int) ([]*SurgeryType, int, error) {
	var out []*SurgeryType
	for _, st := range m.types {
		out = append(out, st)
	}
	return out, len(out), nil
}

type mockRepo struct {
	surgeries map[uuid.UUID]*Surgery
	statusErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{surgeries: make(map[uuid.UUID]*Surgery)}
}

func (m *mockRepo) Create(_ context.Context, s *Surgery) error {
	s.ID = uuid.New()
	m.surgeries[s.ID] = s
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Surgery, error) {
	return m.surgeries[id], nil
}

func (m *mockRepo) Update(_ context.Context, s *Surgery) error {
	m.surgeries[s.ID] = s
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.surgeries, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, _, _ int) ([]*Surgery, int, error) {
	var out []*Surgery
	for _, s := range m.surgeries {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, _, _ int) ([]*Surgery, int, error) {
	var out []*Surgery
	for _, s := range m.surgeries {
		if s.DoctorID == doctorID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*Surgery, int, error) {
	var out []*Surgery
	for _, s := range m.surgeries {
		if s.PatientID == patientID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) UpdateMedicalStatus(_ context.Context, id uuid.UUID, status string) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	s, ok := m.surgeries[id]
	if !ok {
		return fmt.Errorf("surgery %s not found", id)
	}
	s.MedicalStatus = status
	return nil
}

func newTestService() *Service {
	return NewService(newMockTypeRepo(), newMockRepo())
}

func validSurgery() *Surgery {
	return &Surgery{
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		SurgeryTypeID: uuid.New(),
		SurgeryDate:   time.Now(),
	}
}

func TestCreateType_Valid(t *testing.T) {
	svc := newTestService()
	st := &SurgeryType{Name: "Apendicectomia"}
	if err := svc.CreateType(context.Background(), st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ID == uuid.Nil {
		t.Error("surgery type should get an id")
	}
}

func TestCreateType_MissingName(t *testing.T) {
	svc := newTestService()
	if err := svc.CreateType(context.Background(), &SurgeryType{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCreateType_BadRecoveryDays(t *testing.T) {
	svc := newTestService()
	days := -3
	st := &SurgeryType{Name: "Apendicectomia", ExpectedRecoveryDays: &days}
	if err := svc.CreateType(context.Background(), st); err == nil {
		t.Error("expected error for non-positive recovery days")
	}
}

func TestCreateSurgery_Defaults(t *testing.T) {
	svc := newTestService()
	sg := validSurgery()
	if err := svc.Create(context.Background(), sg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sg.Status != StatusActive {
		t.Errorf("expected default status active, got %q", sg.Status)
	}
	if sg.MedicalStatus != MedicalStatusStable {
		t.Errorf("expected default medical_status stable, got %q", sg.MedicalStatus)
	}
}

func TestCreateSurgery_MissingPatient(t *testing.T) {
	svc := newTestService()
	sg := validSurgery()
	sg.PatientID = uuid.Nil
	if err := svc.Create(context.Background(), sg); err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestCreateSurgery_InvalidStatus(t *testing.T) {
	svc := newTestService()
	sg := validSurgery()
	sg.Status = "archived"
	if err := svc.Create(context.Background(), sg); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestUpdateMedicalStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(newMockTypeRepo(), repo)
	sg := validSurgery()
	if err := svc.Create(context.Background(), sg); err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateMedicalStatus(context.Background(), sg.ID, MedicalStatusCritical); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.surgeries[sg.ID].MedicalStatus != MedicalStatusCritical {
		t.Error("medical status should be overwritten")
	}

	// Last write wins: a stable verdict replaces critical.
	if err := svc.UpdateMedicalStatus(context.Background(), sg.ID, MedicalStatusStable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.surgeries[sg.ID].MedicalStatus != MedicalStatusStable {
		t.Error("a newer stable verdict should replace critical")
	}
}

func TestUpdateMedicalStatus_Invalid(t *testing.T) {
	svc := newTestService()
	if err := svc.UpdateMedicalStatus(context.Background(), uuid.New(), "degraded"); err == nil {
		t.Error("expected error for unknown medical status")
	}
}

func TestListByDoctor(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(newMockTypeRepo(), repo)
	doctor := uuid.New()

	sg := validSurgery()
	sg.DoctorID = doctor
	if err := svc.Create(context.Background(), sg); err != nil {
		t.Fatal(err)
	}
	other := validSurgery()
	if err := svc.Create(context.Background(), other); err != nil {
		t.Fatal(err)
	}

	items, total, err := svc.ListByDoctor(context.Background(), doctor, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected 1 surgery for doctor, got %d", total)
	}
}
