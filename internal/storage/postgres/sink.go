package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"

	"clickup_sync/internal/domain"
)

const (
	tableBoard  = "board"
	tableSprint = "sprint"
	tableIssue  = "issue"
)

// ErrConnection marks a failure to reach the destination database.
var ErrConnection = errors.New("database connection failed")

type SinkConfig struct {
	DSN    string
	Schema string
}

// Sink writes batches of destination rows. Every Insert call opens its own
// connection and closes it before returning.
type Sink struct {
	dsn    string
	schema string
	logger *slog.Logger
}

func NewSink(cfg SinkConfig, logger *slog.Logger) *Sink {
	return &Sink{
		dsn:    cfg.DSN,
		schema: cfg.Schema,
		logger: logger.With("component", "sink"),
	}
}

func (s *Sink) table(name string) string {
	return pq.QuoteIdentifier(s.schema) + "." + pq.QuoteIdentifier(name)
}

func (s *Sink) connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", s.dsn)
	if err != nil {
		return nil, pkgerrors.WithStack(fmt.Errorf("%w: %w", ErrConnection, err))
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

type labeled interface {
	DisplayLabel() string
}

// insertBatch inserts rows one statement at a time inside a single
// transaction. A failing row is rolled back to its savepoint, logged and
// recorded; the rest of the batch carries on and is committed once.
func insertBatch[T labeled](
	ctx context.Context,
	s *Sink,
	table, query string,
	rows []T,
	key func(T) string,
) (*domain.InsertResult, error) {
	result := &domain.InsertResult{Table: table}
	if len(rows) == 0 {
		return result, nil
	}

	logger := s.logger.With("table", table)

	db, err := s.connect(ctx)
	if err != nil {
		logger.Error("database error", "error", err)
		return nil, err
	}
	defer db.Close()

	err = withTransaction(ctx, db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, query)
		if err != nil {
			return pkgerrors.WithStack(fmt.Errorf("prepare insert into %s: %w", table, err))
		}
		defer stmt.Close()

		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}

			result.Attempted++
			rowErr, err := withSavepoint(ctx, tx, func() error {
				_, err := stmt.ExecContext(ctx, row)
				return err
			})
			if err != nil {
				return err
			}
			if rowErr != nil {
				failure := domain.RowFailure{Key: key(row), Label: row.DisplayLabel(), Err: rowErr}
				logger.Warn("failed to insert row",
					"key", failure.Key,
					"name", failure.Label,
					"error", rowErr,
				)
				result.Failures = append(result.Failures, failure)
				continue
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		logger.Error("database error", "error", err)
		return nil, err
	}

	logger.Info("batch committed",
		"inserted", result.Inserted,
		"failed", len(result.Failures),
	)

	return result, nil
}
