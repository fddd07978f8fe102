package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lekha/internal/port"
)

type txKey struct{}

// dbtx is satisfied by both *sqlx.DB and *sqlx.Tx, so repository methods run
// unchanged inside or outside a transaction.
type dbtx interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type transactor struct {
	db *sqlx.DB
}

// NewTransactor creates a Transactor backed by the given connection pool.
func NewTransactor(db *sqlx.DB) port.Transactor {
	return &transactor{db: db}
}

// WithinTx begins a transaction, binds it to the context, and commits if fn
// returns nil. Any error rolls the whole unit back.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	ctx = context.WithValue(ctx, txKey{}, tx)
	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ext returns the transaction bound to ctx, or the base pool.
func ext(ctx context.Context, db *sqlx.DB) dbtx {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
