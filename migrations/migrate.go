// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose migrations of both supported
// databases and applies them at startup.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrUnsupportedDriver is returned for a driver without a migration set.
var ErrUnsupportedDriver = errors.New("no migrations for driver")

// dialects maps database/sql driver names to goose dialects and the
// directory holding their migrations.
var dialects = map[string]struct {
	dialect goose.Dialect
	dir     string
}{
	"pgx":     {dialect: goose.DialectPostgres, dir: "postgres"},
	"sqlite3": {dialect: goose.DialectSQLite3, dir: "sqlite"},
}

// Migrate applies every pending migration for driver ("pgx" or "sqlite3")
// and returns the number of migrations applied.
func Migrate(ctx context.Context, db *sql.DB, driver string) (int, error) {
	if db == nil {
		return 0, errors.New("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return 0, fmt.Errorf("migration error: %w %q", ErrUnsupportedDriver, driver)
	}

	fsys, err := fs.Sub(embedMigrations, d.dir)
	if err != nil {
		return 0, fmt.Errorf("migration error opening %s migrations: %w", d.dir, err)
	}

	provider, err := goose.NewProvider(d.dialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("migration error creating provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migration error: %w", err)
	}

	return len(results), nil
}
