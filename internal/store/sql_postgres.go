// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Constraint and index names declared by the migrations.
const (
	usersEmailUniqueIndex = "users_email_unique_idx"
	usersNameUniqueIndex  = "users_name_unique_idx"
	followsNoSelfFollow   = "follows_no_self_follow"
)

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open(config.DriverPostgres, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		dialect:            postgresDialect,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

func postgresError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

func postgresConstraintError(err error) error {
	pgErr, ok := postgresError(err)
	if !ok {
		return nil
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case usersEmailUniqueIndex:
			return ErrEmailAlreadyExists
		case usersNameUniqueIndex:
			return ErrNameAlreadyExists
		}
	case pgerrcode.CheckViolation:
		if pgErr.ConstraintName == followsNoSelfFollow {
			return ErrSelfFollow
		}
	case pgerrcode.ForeignKeyViolation:
		return ErrUserNotFound
	}

	return nil
}
