package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	FullName  string     `db:"full_name" json:"full_name"`
	Email     *string    `db:"email" json:"email,omitempty"`
	Phone     *string    `db:"phone" json:"phone,omitempty"`
	CPF       *string    `db:"cpf" json:"cpf,omitempty"`
	Sex       *string    `db:"sex" json:"sex,omitempty"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	DoctorID  *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
