// Package repository contains the MySQL data access layer.  Each
// repository wraps a *sql.DB and joins the transaction carried by the
// context when there is one (see TxManager).  Driver errors are
// translated into model.ErrNotFound and model.ErrIntegrityConflict so
// the layers above never inspect MySQL error numbers.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// querier is the subset of *sql.DB and *sql.Tx used by the repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// TxManager runs a function inside one database transaction.  Every
// repository call made with the context handed to fn joins that
// transaction, so a whole save (reads, locks and writes) commits or
// rolls back as one unit.
type TxManager struct {
	db *sql.DB
}

// NewTxManager constructs a TxManager over the given pool.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTx begins a transaction, runs fn and commits when fn returns nil.
// Nested calls reuse the outer transaction.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

// forUpdate appends a row lock to q when running inside a transaction.
func forUpdate(ctx context.Context, q string) string {
	if txFromContext(ctx) != nil {
		return q + " FOR UPDATE"
	}
	return q
}

// MySQL server error numbers translated into model errors.
const (
	errDupEntry         = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errRowIsReferenced2 = 1217
	errNoReferencedRow2 = 1216
)

// translate maps driver errors onto the model sentinels, adding what
// entity was being written.  sql.ErrNoRows becomes model.ErrNotFound.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, model.ErrNotFound)
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDupEntry:
			return fmt.Errorf("%s: %w: %s", entity, model.ErrIntegrityConflict, me.Message)
		case errRowIsReferenced, errRowIsReferenced2:
			return fmt.Errorf("%s is still referenced: %w", entity, model.ErrIntegrityConflict)
		case errNoReferencedRow, errNoReferencedRow2:
			return fmt.Errorf("%s references a missing row: %w", entity, model.ErrNotFound)
		}
	}
	return err
}

// affected turns a zero row count into model.ErrNotFound.
func affected(res sql.Result, entity string) error {
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", entity, model.ErrNotFound)
	}
	return nil
}
