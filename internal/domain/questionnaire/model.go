package questionnaire

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Input types the classifier understands. Validated as a closed set on write.
const (
	InputScale       = "scale"
	InputBoolean     = "boolean"
	InputSelect      = "select"
	InputMultiselect = "multiselect"
	InputText        = "text"
)

// Question maps to the question table. Options are loaded alongside for
// boolean/select/multiselect questions, ordered by display_order.
type Question struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SurgeryTypeID uuid.UUID `db:"surgery_type_id" json:"surgery_type_id"`
	Text          string    `db:"text" json:"text"`
	InputType     string    `db:"input_type" json:"input_type"`
	Metadata      Metadata  `db:"metadata" json:"metadata"`
	DisplayOrder  int       `db:"display_order" json:"display_order"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	Options []*Option `db:"-" json:"options,omitempty"`

	// DependsOnQuestionID is the dependency reference resolved from
	// metadata.depends_on_question_text when the catalog is loaded. Not
	// persisted; the text rule in metadata stays the storage format.
	DependsOnQuestionID *uuid.UUID `db:"-" json:"depends_on_question_id,omitempty"`
}

// Option maps to the question_option table.
type Option struct {
	ID           uuid.UUID `db:"id" json:"id"`
	QuestionID   uuid.UUID `db:"question_id" json:"question_id"`
	Value        string    `db:"value" json:"value"`
	Label        string    `db:"label" json:"label"`
	IsAbnormal   bool      `db:"is_abnormal" json:"is_abnormal"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
}

// Metadata is the question's JSONB configuration bag. Unknown keys are
// dropped on round-trip; the recognized ones drive visibility, abnormality
// and required-answer handling.
type Metadata struct {
	Category              string         `json:"category,omitempty"`
	AbnormalMin           *float64       `json:"abnormal_min,omitempty"`
	DependsOnQuestionText string         `json:"depends_on_question_text,omitempty"`
	DependsOnValue        StringOrNumber `json:"depends_on_value,omitempty"`
	DependsOnCondition    string         `json:"depends_on_condition,omitempty"`
	MaxLength             *int           `json:"max_length,omitempty"`
	Optional              *bool          `json:"optional,omitempty"`
	IsRequired            *bool          `json:"is_required,omitempty"`
}

// CategoryCritical tags a question as clinically critical; abnormal answers
// on these questions escalate severity faster.
const CategoryCritical = "critical"

// IsCritical reports whether the question carries the critical category tag.
func (q *Question) IsCritical() bool {
	return q.Metadata.Category == CategoryCritical
}

// HasDependency reports whether a conditional visibility rule is present.
func (q *Question) HasDependency() bool {
	return q.DependsOnQuestionID != nil || q.Metadata.DependsOnQuestionText != ""
}

// IsOptional reports whether an unanswered question should be tolerated at
// submission time. Free-text questions default to optional unless the
// catalog explicitly requires them.
func (q *Question) IsOptional() bool {
	if q.Metadata.Optional != nil && *q.Metadata.Optional {
		return true
	}
	if q.Metadata.IsRequired != nil {
		return !*q.Metadata.IsRequired
	}
	return q.InputType == InputText
}

// StringOrNumber decodes a JSON string or number into its string form.
// Catalog rows created by older tooling store numeric thresholds without
// quoting them.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = StringOrNumber(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = StringOrNumber(n.String())
	return nil
}

// Answer is one raw questionnaire answer: a scalar string for
// scale/boolean/select/text questions, a list of option values for
// multiselect.
type Answer struct {
	Value  string
	Values []string
}

// IsEmpty reports whether the answer counts as unanswered.
func (a Answer) IsEmpty() bool {
	return a.Value == "" && len(a.Values) == 0
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &a.Values)
	}
	var s StringOrNumber
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	a.Value = string(s)
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Values != nil {
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

// AnswerSet maps question id to the patient's raw answer. An absent or
// empty entry means unanswered.
type AnswerSet map[uuid.UUID]Answer
