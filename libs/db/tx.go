package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type txKey struct{}

// TxOptions controls WithTx. The zero value runs a SERIALIZABLE transaction
// and retries it up to three times on serialization failures.
type TxOptions struct {
	IsoLevel    pgx.TxIsoLevel
	MaxAttempts int
}

// WithTx runs fn inside a transaction carried on the context. Nested calls join
// the outer transaction. fn may run more than once when the transaction is retried,
// so it must not keep side effects outside the database between attempts.
func WithTx(ctx context.Context, pool *Pool, opts TxOptions, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	if opts.IsoLevel == "" {
		opts.IsoLevel = pgx.Serializable
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}

	var err error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		err = runTx(ctx, pool, opts.IsoLevel, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*10) * time.Millisecond):
		}
	}
	return err
}

func runTx(ctx context.Context, pool *Pool, iso pgx.TxIsoLevel, fn func(ctx context.Context) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: iso})
	if err != nil {
		return err
	}
	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// Querier is the subset of pgx shared by pools and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn returns the transaction on ctx, or the pool when there is none.
func (p *Pool) Conn(ctx context.Context) Querier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return p.Pool
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports serialization failures and deadlocks.
func IsRetryable(err error) bool {
	code := pgCode(err)
	return code == "40001" || code == "40P01"
}

func IsExclusionViolation(err error) bool {
	return pgCode(err) == "23P01"
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

func IsInvalidText(err error) bool {
	return pgCode(err) == "22P02"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
