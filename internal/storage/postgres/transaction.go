package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const rowSavepoint = "batch_row"

// withTransaction runs fn inside one transaction and commits once. The
// transaction is rolled back when fn or the commit fails.
func withTransaction(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.WithStack(fmt.Errorf("begin transaction: %w", err))
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return errors.WithStack(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// withSavepoint runs fn behind a savepoint so that a failing statement only
// discards its own work. rowErr is fn's error; err is a failure to manage the
// savepoint itself, which leaves the transaction unusable.
func withSavepoint(ctx context.Context, tx *sqlx.Tx, fn func() error) (rowErr, err error) {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+rowSavepoint); err != nil {
		return nil, errors.WithStack(fmt.Errorf("create savepoint: %w", err))
	}

	if rowErr := fn(); rowErr != nil {
		if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+rowSavepoint); err != nil {
			return rowErr, errors.WithStack(fmt.Errorf("rollback to savepoint: %w", err))
		}
		return rowErr, nil
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+rowSavepoint); err != nil {
		return nil, errors.WithStack(fmt.Errorf("release savepoint: %w", err))
	}
	return nil, nil
}
