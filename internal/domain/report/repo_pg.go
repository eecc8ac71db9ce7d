package report

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

// =========== Report Repository ===========

type reportRepoPG struct{ pool *pgxpool.Pool }

func NewReportRepoPG(pool *pgxpool.Pool) ReportRepository { return &reportRepoPG{pool: pool} }

func (r *reportRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const reportCols = `id, surgery_id, patient_id, date, answers, pain_level, symptoms, created_at`

func scanReport(row pgx.Row) (*DailyReport, error) {
	var dr DailyReport
	err := row.Scan(&dr.ID, &dr.SurgeryID, &dr.PatientID, &dr.Date, &dr.Answers,
		&dr.PainLevel, &dr.Symptoms, &dr.CreatedAt)
	return &dr, err
}

func (r *reportRepoPG) Create(ctx context.Context, dr *DailyReport) error {
	dr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO daily_report (id, surgery_id, patient_id, date, answers, pain_level, symptoms)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		dr.ID, dr.SurgeryID, dr.PatientID, dr.Date, dr.Answers, dr.PainLevel, dr.Symptoms)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateReport
	}
	return err
}

func (r *reportRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DailyReport, error) {
	dr, err := scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM daily_report WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return dr, err
}

func (r *reportRepoPG) ListBySurgery(ctx context.Context, surgeryID uuid.UUID, limit, offset int) ([]*DailyReport, int, error) {
	return r.list(ctx, `WHERE surgery_id = $1`, []interface{}{surgeryID}, limit, offset)
}

func (r *reportRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DailyReport, int, error) {
	return r.list(ctx, `WHERE patient_id = $1`, []interface{}{patientID}, limit, offset)
}

func (r *reportRepoPG) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*DailyReport, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM daily_report `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	n := len(args)
	q := fmt.Sprintf(`SELECT %s FROM daily_report %s ORDER BY date DESC LIMIT $%d OFFSET $%d`,
		reportCols, where, n+1, n+2)
	rows, err := r.conn(ctx).Query(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DailyReport
	for rows.Next() {
		dr, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, dr)
	}
	return items, total, rows.Err()
}

// =========== Alert Repository ===========

type alertRepoPG struct{ pool *pgxpool.Pool }

func NewAlertRepoPG(pool *pgxpool.Pool) AlertRepository { return &alertRepoPG{pool: pool} }

func (r *alertRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const alertCols = `id, surgery_id, report_id, severity, message, is_resolved, created_at, resolved_at`

func scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	err := row.Scan(&a.ID, &a.SurgeryID, &a.ReportID, &a.Severity, &a.Message,
		&a.IsResolved, &a.CreatedAt, &a.ResolvedAt)
	return &a, err
}

func (r *alertRepoPG) Create(ctx context.Context, a *Alert) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO alert (id, surgery_id, report_id, severity, message, is_resolved)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.SurgeryID, a.ReportID, a.Severity, a.Message, a.IsResolved)
	return err
}

func (r *alertRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Alert, error) {
	a, err := scanAlert(r.conn(ctx).QueryRow(ctx,
		`SELECT `+alertCols+` FROM alert WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *alertRepoPG) ListBySurgery(ctx context.Context, surgeryID uuid.UUID, unresolvedOnly bool, limit, offset int) ([]*Alert, int, error) {
	where := `WHERE surgery_id = $1`
	if unresolvedOnly {
		where += ` AND NOT is_resolved`
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM alert `+where, surgeryID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+alertCols+` FROM alert `+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		surgeryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *alertRepoPG) Resolve(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE alert SET is_resolved = TRUE, resolved_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("alert %s not found", id)
	}
	return nil
}
