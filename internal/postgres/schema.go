package postgres

import (
	"context"
	_ "embed"

	ierr "github.com/flexprice/budgetpdf/internal/errors"
)

// Schema creates the tables the budget repository reads. Every statement is
// idempotent.
//
//go:embed schema.sql
var Schema string

// ApplySchema runs Schema in a single transaction
func (db *DB) ApplySchema(ctx context.Context) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not start schema migration").
			Mark(ierr.ErrDatabase)
	}

	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Errorw("failed to rollback schema migration", "error", rbErr)
		}
		return ierr.WithError(err).
			WithHint("Schema migration failed").
			Mark(ierr.ErrDatabase)
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Could not commit schema migration").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
