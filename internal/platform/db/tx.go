package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

const (
	// DBConnKey carries a request-scoped pool connection.
	DBConnKey contextKey = "db_conn"
	// DBTxKey carries an open transaction; repositories prefer it over the pool.
	DBTxKey contextKey = "db_tx"
)

// ConnFromContext retrieves the request-scoped database connection, if any.
func ConnFromContext(ctx context.Context) *pgxpool.Conn {
	conn, _ := ctx.Value(DBConnKey).(*pgxpool.Conn)
	return conn
}

// TxFromContext retrieves the open transaction from context, if any.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(DBTxKey).(pgx.Tx)
	return tx
}

// WithContext returns a child context carrying tx so that repository calls
// made with it participate in the transaction.
func WithContext(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, DBTxKey, tx)
}

// RunInTx begins a transaction on pool, runs fn with a context that carries
// it, and commits. Any error from fn rolls the transaction back.
func RunInTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(WithContext(ctx, tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
