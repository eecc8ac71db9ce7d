package surgery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/postcare/postcare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Surgery Type Repository ===========

type typeRepoPG struct{ pool *pgxpool.Pool }

func NewTypeRepoPG(pool *pgxpool.Pool) TypeRepository { return &typeRepoPG{pool: pool} }

func (r *typeRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const typeCols = `id, name, description, expected_recovery_days, created_at, updated_at`

func scanType(row pgx.Row) (*SurgeryType, error) {
	var st SurgeryType
	err := row.Scan(&st.ID, &st.Name, &st.Description, &st.ExpectedRecoveryDays, &st.CreatedAt, &st.UpdatedAt)
	return &st, err
}

func (r *typeRepoPG) Create(ctx context.Context, st *SurgeryType) error {
	st.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery_type (id, name, description, expected_recovery_days)
		VALUES ($1,$2,$3,$4)`,
		st.ID, st.Name, st.Description, st.ExpectedRecoveryDays)
	return err
}

func (r *typeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*SurgeryType, error) {
	st, err := scanType(r.conn(ctx).QueryRow(ctx, `SELECT `+typeCols+` FROM surgery_type WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return st, err
}

func (r *typeRepoPG) Update(ctx context.Context, st *SurgeryType) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery_type SET name=$2, description=$3, expected_recovery_days=$4, updated_at=NOW()
		WHERE id = $1`,
		st.ID, st.Name, st.Description, st.ExpectedRecoveryDays)
	return err
}

func (r *typeRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgery_type WHERE id = $1`, id)
	return err
}

func (r *typeRepoPG) List(ctx context.Context, limit, offset int) ([]*SurgeryType, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM surgery_type`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+typeCols+` FROM surgery_type ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SurgeryType
	for rows.Next() {
		st, err := scanType(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, st)
	}
	return items, total, rows.Err()
}

// =========== Surgery Repository ===========

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const surgeryCols = `id, patient_id, doctor_id, surgery_type_id, surgery_date, status, medical_status, notes, created_at, updated_at`

func scanSurgery(row pgx.Row) (*Surgery, error) {
	var s Surgery
	err := row.Scan(&s.ID, &s.PatientID, &s.DoctorID, &s.SurgeryTypeID, &s.SurgeryDate,
		&s.Status, &s.MedicalStatus, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Surgery) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery (id, patient_id, doctor_id, surgery_type_id, surgery_date, status, medical_status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.PatientID, s.DoctorID, s.SurgeryTypeID, s.SurgeryDate, s.Status, s.MedicalStatus, s.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	s, err := scanSurgery(r.conn(ctx).QueryRow(ctx, `SELECT `+surgeryCols+` FROM surgery WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *repoPG) Update(ctx context.Context, s *Surgery) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery SET surgery_date=$2, status=$3, medical_status=$4, notes=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.SurgeryDate, s.Status, s.MedicalStatus, s.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgery WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Surgery, int, error) {
	return r.list(ctx, ``, nil, limit, offset)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Surgery, int, error) {
	return r.list(ctx, `WHERE doctor_id = $1`, []interface{}{doctorID}, limit, offset)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Surgery, int, error) {
	return r.list(ctx, `WHERE patient_id = $1`, []interface{}{patientID}, limit, offset)
}

func (r *repoPG) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*Surgery, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM surgery `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	n := len(args)
	q := fmt.Sprintf(`SELECT %s FROM surgery %s ORDER BY surgery_date DESC LIMIT $%d OFFSET $%d`,
		surgeryCols, where, n+1, n+2)
	rows, err := r.conn(ctx).Query(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Surgery
	for rows.Next() {
		s, err := scanSurgery(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *repoPG) UpdateMedicalStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE surgery SET medical_status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("surgery %s not found", id)
	}
	return nil
}
