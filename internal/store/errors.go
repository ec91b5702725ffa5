// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when an operation references a user id,
	// e-mail or name that has no row in the users table.
	ErrUserNotFound = errors.New("user was not found")

	// ErrEmailAlreadyExists is returned when an insert or update collides
	// with the case-insensitive unique index on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNameAlreadyExists is returned when an insert or update collides
	// with the case-insensitive unique index on users.name.
	ErrNameAlreadyExists = errors.New("name already exists")

	// ErrSelfFollow is returned when the follows_no_self_follow check
	// constraint rejects an edge.
	ErrSelfFollow = errors.New("follow edge points at its own follower")

	// ErrInvalidCursor is returned when a pagination cursor cannot be
	// decoded.
	ErrInvalidCursor = errors.New("invalid pagination cursor")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrUnsupportedDriver is returned when the configured driver is
	// neither pgx nor sqlite3.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result set
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
