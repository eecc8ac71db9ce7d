package patient

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

const patientCols = `id, full_name, email, phone, cpf, sex, birth_date, doctor_id, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CPF, &p.Sex,
		&p.BirthDate, &p.DoctorID, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, full_name, email, phone, cpf, sex, birth_date, doctor_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.FullName, p.Email, p.Phone, p.CPF, p.Sex, p.BirthDate, p.DoctorID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET full_name=$2, email=$3, phone=$4, cpf=$5, sex=$6, birth_date=$7, doctor_id=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.Email, p.Phone, p.CPF, p.Sex, p.BirthDate, p.DoctorID)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return r.list(ctx, ``, nil, limit, offset)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return r.list(ctx, `WHERE doctor_id = $1`, []interface{}{doctorID}, limit, offset)
}

func (r *repoPG) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	n := len(args)
	q := fmt.Sprintf(`SELECT %s FROM patient %s ORDER BY full_name LIMIT $%d OFFSET $%d`,
		patientCols, where, n+1, n+2)
	rows, err := r.conn(ctx).Query(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
