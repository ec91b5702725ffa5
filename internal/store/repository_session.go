// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/models"
	"github.com/Masterminds/squirrel"
)

type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] storing remember
// digests in the users table.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// SetRememberDigest stores digest for the user; nil clears it.
func (r *sessionRepository) SetRememberDigest(ctx context.Context, userID int64, digest *string) error {
	log := logger.FromContext(ctx)

	var value any
	if digest != nil {
		value = *digest
	}

	query, args, err := r.db.builder().Update(models.User{}.TableName()).
		Set("remember_digest", value).
		Set("updated_at", nowUTC()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.SetRememberDigest").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.SetRememberDigest").Msg("error updating remember digest")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetRememberDigest returns the stored digest, nil when none is set.
func (r *sessionRepository) GetRememberDigest(ctx context.Context, userID int64) (*string, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().Select("remember_digest").
		From(models.User{}.TableName()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetRememberDigest").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var digest sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetRememberDigest").Msg("error selecting remember digest")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !digest.Valid {
		return nil, nil
	}
	return &digest.String, nil
}
