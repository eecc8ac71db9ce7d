package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/postcare/postcare/internal/domain/questionnaire"
)

// DailyReport maps to the daily_report table: one row per surgery per local
// calendar day. Immutable once created.
type DailyReport struct {
	ID        uuid.UUID               `db:"id" json:"id"`
	SurgeryID uuid.UUID               `db:"surgery_id" json:"surgery_id"`
	PatientID uuid.UUID               `db:"patient_id" json:"patient_id"`
	Date      time.Time               `db:"date" json:"date"`
	Answers   questionnaire.AnswerSet `db:"answers" json:"answers"`
	PainLevel int                     `db:"pain_level" json:"pain_level"`
	Symptoms  []string                `db:"symptoms" json:"symptoms"`
	CreatedAt time.Time               `db:"created_at" json:"created_at"`

	Alerts []*Alert `db:"-" json:"alerts,omitempty"`
}

// Alert maps to the alert table. ReportID ties the alert to the report it
// was derived from; rows created before the column existed are matched by
// surgery and calendar date on read.
type Alert struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	SurgeryID  uuid.UUID  `db:"surgery_id" json:"surgery_id"`
	ReportID   *uuid.UUID `db:"report_id" json:"report_id,omitempty"`
	Severity   string     `db:"severity" json:"severity"`
	Message    string     `db:"message" json:"message"`
	IsResolved bool       `db:"is_resolved" json:"is_resolved"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ResolvedAt *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
}
