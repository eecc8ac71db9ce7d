package surgery

import (
	"time"

	"github.com/google/uuid"
)

// SurgeryType maps to the surgery_type table. Each type owns the question
// catalog patients answer during recovery.
type SurgeryType struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Description          *string   `db:"description" json:"description,omitempty"`
	ExpectedRecoveryDays *int      `db:"expected_recovery_days" json:"expected_recovery_days,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// Surgery maps to the surgery table: one tracked recovery episode for a
// patient. MedicalStatus is the doctor-facing rolling indicator, overwritten
// by each daily report's verdict.
type Surgery struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	SurgeryTypeID uuid.UUID `db:"surgery_type_id" json:"surgery_type_id"`
	SurgeryDate   time.Time `db:"surgery_date" json:"surgery_date"`
	Status        string    `db:"status" json:"status"`
	MedicalStatus string    `db:"medical_status" json:"medical_status"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

const (
	MedicalStatusStable   = "stable"
	MedicalStatusWarning  = "warning"
	MedicalStatusCritical = "critical"
)
