// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// goose talks to the database itself; every call fails
	mock.MatchExpectationsInOrder(false)
	mock.ExpectExec(".*").WillReturnError(errors.New("connection refused"))

	_, err = Migrate(context.Background(), db, "pgx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	_, err := Migrate(context.Background(), db, "pgx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnsupportedDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(context.Background(), db, "mysql")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestMigrate_SQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "migrate.db") + "?_foreign_keys=on"
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	applied, err := Migrate(ctx, db, "sqlite3")
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	// second run is a no-op
	applied, err = Migrate(ctx, db, "sqlite3")
	require.NoError(t, err)
	assert.Zero(t, applied)

	for _, table := range []string{"users", "follows", "posts"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	// the self-follow check is part of the schema
	_, err = db.ExecContext(ctx, "INSERT INTO users (email, name, password_digest) VALUES ('a@x.com', 'a', 'd')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO follows (follower_id, followed_user_id) VALUES (1, 1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "follows_no_self_follow")
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, d := range dialects {
		entries, err := embedMigrations.ReadDir(d.dir)
		require.NoError(t, err)
		assert.Len(t, entries, 3, d.dir)
	}
}
