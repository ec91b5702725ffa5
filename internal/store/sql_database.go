// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/migrations"
	"github.com/Masterminds/squirrel"
)

// maxTxAttempts bounds how often a transaction that failed with a
// retryable error (deadlock, serialization failure, busy database) is run.
const maxTxAttempts = 3

// Dialect captures the SQL differences between the supported databases.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string
	// Placeholder is the bind variable format ($1 or ?).
	Placeholder squirrel.PlaceholderFormat
	// LockSuffix is appended to row-locking SELECTs. SQLite serializes
	// writers itself and has no row locks.
	LockSuffix string
}

var (
	postgresDialect = Dialect{Driver: config.DriverPostgres, Placeholder: squirrel.Dollar, LockSuffix: "FOR UPDATE"}
	sqliteDialect   = Dialect{Driver: config.DriverSQLite, Placeholder: squirrel.Question}
)

// DB wraps *sql.DB with the dialect, the error classifier and the logger of
// the connection.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnection opens the database selected by cfg.Driver.
func NewConnection(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.dialect.Driver)
	if err != nil {
		db.logger.Err(err).Str("func", "*DB.Migrate").Msg("error applying migrations")
		return err
	}

	db.logger.Info().Str("func", "*DB.Migrate").Int("applied", applied).Msg("migrations applied")
	return nil
}

// Dialect returns the SQL dialect of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// builder returns a squirrel statement builder using the connection's
// placeholder format.
func (db *DB) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(db.dialect.Placeholder)
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise. Attempts failing with a retryable error are
// repeated up to maxTxAttempts times; fn must therefore be free of side
// effects outside tx.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || !db.isRetryable(err) || ctx.Err() != nil {
			return err
		}

		log.Warn().Err(err).
			Str("func", "*DB.WithTx").
			Int("attempt", attempt).
			Msg("retryable transaction error")
		time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
	}

	return err
}

func (db *DB) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (db *DB) isRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}

	return db.errorClassificator.Classify(err) == Retryable
}

// constraintError maps a constraint violation reported by the driver to a
// store sentinel error. It returns nil for any other error.
func (db *DB) constraintError(err error) error {
	if err == nil {
		return nil
	}

	switch db.dialect.Driver {
	case config.DriverSQLite:
		return sqliteConstraintError(err)
	default:
		return postgresConstraintError(err)
	}
}

// nowUTC is the timestamp source for rows written by the repositories.
// Postgres keeps microseconds, so the value is truncated to keep cursors
// built from returned rows identical to the stored ones.
var nowUTC = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
