package questionnaire

import (
	"context"
	"errors"

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

const questionCols = `id, surgery_type_id, text, input_type, metadata, display_order, is_active, created_at, updated_at`

func scanQuestion(row pgx.Row) (*Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.SurgeryTypeID, &q.Text, &q.InputType, &q.Metadata,
		&q.DisplayOrder, &q.IsActive, &q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *repoPG) Create(ctx context.Context, q *Question) error {
	q.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO question (id, surgery_type_id, text, input_type, metadata, display_order, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		q.ID, q.SurgeryTypeID, q.Text, q.InputType, q.Metadata, q.DisplayOrder, q.IsActive)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, err := scanQuestion(r.conn(ctx).QueryRow(ctx,
		`SELECT `+questionCols+` FROM question WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	q.Options, err = r.GetOptions(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *repoPG) Update(ctx context.Context, q *Question) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE question SET text=$2, input_type=$3, metadata=$4, display_order=$5, is_active=$6, updated_at=NOW()
		WHERE id = $1`,
		q.ID, q.Text, q.InputType, q.Metadata, q.DisplayOrder, q.IsActive)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM question WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListBySurgeryType(ctx context.Context, surgeryTypeID uuid.UUID) ([]*Question, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+questionCols+` FROM question
		WHERE surgery_type_id = $1 AND is_active
		ORDER BY display_order, created_at`, surgeryTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*Question
	byID := make(map[uuid.UUID]*Question)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
		byID[q.ID] = q
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	optRows, err := r.conn(ctx).Query(ctx, `
		SELECT `+optionCols+` FROM question_option o
		WHERE o.question_id IN (SELECT id FROM question WHERE surgery_type_id = $1 AND is_active)
		ORDER BY o.display_order`, surgeryTypeID)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()
	for optRows.Next() {
		o, err := scanOption(optRows)
		if err != nil {
			return nil, err
		}
		if q, ok := byID[o.QuestionID]; ok {
			q.Options = append(q.Options, o)
		}
	}
	return questions, optRows.Err()
}

const optionCols = `id, question_id, value, label, is_abnormal, display_order`

func scanOption(row pgx.Row) (*Option, error) {
	var o Option
	err := row.Scan(&o.ID, &o.QuestionID, &o.Value, &o.Label, &o.IsAbnormal, &o.DisplayOrder)
	return &o, err
}

func (r *repoPG) AddOption(ctx context.Context, o *Option) error {
	o.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO question_option (id, question_id, value, label, is_abnormal, display_order)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.QuestionID, o.Value, o.Label, o.IsAbnormal, o.DisplayOrder)
	return err
}

func (r *repoPG) GetOptions(ctx context.Context, questionID uuid.UUID) ([]*Option, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+optionCols+` FROM question_option WHERE question_id = $1 ORDER BY display_order`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var opts []*Option
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func (r *repoPG) UpdateOption(ctx context.Context, o *Option) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE question_option SET value=$2, label=$3, is_abnormal=$4, display_order=$5
		WHERE id = $1`,
		o.ID, o.Value, o.Label, o.IsAbnormal, o.DisplayOrder)
	return err
}

func (r *repoPG) RemoveOption(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM question_option WHERE id = $1`, id)
	return err
}
