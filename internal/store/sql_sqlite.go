// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/mattn/go-sqlite3"
)

// sqliteDSNParams are appended to every SQLite DSN unless already present:
// foreign keys drive the ON DELETE CASCADE of follows and posts, immediate
// transactions take the write lock up front.
var sqliteDSNParams = []string{
	"_foreign_keys=on",
	"_busy_timeout=5000",
	"_txlock=immediate",
}

func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(config.DriverSQLite, sqliteDSN(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// SQLite has a single writer
	conn.SetMaxOpenConns(1)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		dialect:            sqliteDialect,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}

	return db, nil
}

// sqliteDSN adds the missing connection parameters to dsn.
func sqliteDSN(dsn string) string {
	var missing []string
	for _, param := range sqliteDSNParams {
		key := param[:strings.IndexByte(param, '=')+1]
		if !strings.Contains(dsn, key) {
			missing = append(missing, param)
		}
	}

	if len(missing) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + strings.Join(missing, "&")
}

func sqliteConstraintError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return nil
	}

	msg := sqliteErr.Error()
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		switch {
		case strings.Contains(msg, usersEmailUniqueIndex):
			return ErrEmailAlreadyExists
		case strings.Contains(msg, usersNameUniqueIndex):
			return ErrNameAlreadyExists
		}
	case sqlite3.ErrConstraintCheck:
		if strings.Contains(msg, followsNoSelfFollow) {
			return ErrSelfFollow
		}
	case sqlite3.ErrConstraintForeignKey:
		return ErrUserNotFound
	}

	return nil
}
