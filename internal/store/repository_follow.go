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
)

// followRepository is the SQL implementation of [FollowRepository]. Edges
// live in "follows"; the denormalized counters live on "users" and are
// changed in the same transaction as the edge.
type followRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFollowRepository constructs a [FollowRepository] backed by db.
func NewFollowRepository(db *DB, logger *logger.Logger) FollowRepository {
	logger.Debug().Msg("creating follow repository")
	return &followRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFollow inserts the edge unless it exists. Both users are locked
// first, so a missing user yields [ErrUserNotFound] and concurrent calls
// for the same pair serialize. Counters move only when a row was inserted.
func (r *followRepository) CreateFollow(ctx context.Context, follow models.Follow) (bool, error) {
	log := logger.FromContext(ctx)

	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = nowUTC()
	}

	var created bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		created = false

		query, args, err := buildInsertFollowQuery(r.db.builder(), follow)
		if err != nil {
			return err
		}

		inserted, err := r.changeEdge(ctx, tx, follow, query, args)
		if err != nil || !inserted {
			return err
		}

		if err = r.adjustCounters(ctx, tx, follow, incrementFollowings, incrementFollowers); err != nil {
			return err
		}

		created = true
		return nil
	})
	if err != nil {
		if cErr := r.db.constraintError(err); cErr != nil {
			return false, cErr
		}
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*followRepository.CreateFollow").
				Int64("follower_id", follow.FollowerID).
				Int64("followed_user_id", follow.FollowedUserID).
				Msg("error creating follow")
		}
		return false, err
	}

	return created, nil
}

// DeleteFollow removes the edge if present. Counters move only when a row
// was deleted.
func (r *followRepository) DeleteFollow(ctx context.Context, follow models.Follow) (bool, error) {
	log := logger.FromContext(ctx)

	var deleted bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		deleted = false

		query, args, err := buildDeleteFollowQuery(r.db.builder(), follow)
		if err != nil {
			return err
		}

		removed, err := r.changeEdge(ctx, tx, follow, query, args)
		if err != nil || !removed {
			return err
		}

		if err = r.adjustCounters(ctx, tx, follow, decrementFollowings, decrementFollowers); err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*followRepository.DeleteFollow").
				Int64("follower_id", follow.FollowerID).
				Int64("followed_user_id", follow.FollowedUserID).
				Msg("error deleting follow")
		}
		return false, err
	}

	return deleted, nil
}

// changeEdge locks both users and runs the edge statement, reporting
// whether it touched a row.
func (r *followRepository) changeEdge(ctx context.Context, tx *sql.Tx, follow models.Follow, query string, args []any) (bool, error) {
	err := lockUsers(ctx, tx, r.db.builder(), r.db.dialect.LockSuffix, follow.FollowerID, follow.FollowedUserID)
	if err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

func (r *followRepository) adjustCounters(ctx context.Context, tx *sql.Tx, follow models.Follow, follower, followed counterChange) error {
	changes := []struct {
		change counterChange
		userID int64
	}{
		{follower, follow.FollowerID},
		{followed, follow.FollowedUserID},
	}

	for _, c := range changes {
		query, args, err := buildAdjustCounterQuery(r.db.builder(), c.change, c.userID)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// FollowExists reports whether followerID follows followedUserID.
func (r *followRepository) FollowExists(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFollowExistsQuery(r.db.builder(), followerID, followedUserID)
	if err != nil {
		log.Err(err).Str("func", "*followRepository.FollowExists").Msg("error building query")
		return false, err
	}

	var exists bool
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*followRepository.FollowExists").Msg("error checking follow")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// ListFollowers returns one page of the users following userID.
func (r *followRepository) ListFollowers(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	return r.listEdges(ctx, "*followRepository.ListFollowers", followersDirection, userID, page)
}

// ListFollowings returns one page of the users userID follows.
func (r *followRepository) ListFollowings(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	return r.listEdges(ctx, "*followRepository.ListFollowings", followingsDirection, userID, page)
}

func (r *followRepository) listEdges(ctx context.Context, fn string, dir edgeDirection, userID int64, page models.PageRequest) (models.UserPage, error) {
	log := logger.FromContext(ctx)

	after, err := decodeCursor(page.After)
	if err != nil {
		return models.UserPage{}, err
	}

	counts, err := r.GetCounts(ctx, userID)
	if err != nil {
		return models.UserPage{}, err
	}

	limit := page.Limit()
	query, args, err := buildListEdgesQuery(r.db.builder(), dir, userID, after, limit)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return models.UserPage{}, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error selecting edges")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	edges := make([]models.UserEdge, 0, limit)
	for rows.Next() {
		var followedAt sql.NullTime
		user, err := scanUser(rows, &followedAt)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning edge")
			return models.UserPage{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		edge := models.UserEdge{User: user, FollowedAt: followedAt.Time.UTC()}
		edge.Cursor = encodeCursor(cursor{CreatedAt: edge.FollowedAt, UserID: user.UserID})
		edges = append(edges, edge)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating edges")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	result := models.UserPage{Edges: edges, TotalCount: counts.FollowersCount}
	if dir == followingsDirection {
		result.TotalCount = counts.FollowingsCount
	}

	if len(result.Edges) > limit {
		result.Edges = result.Edges[:limit]
		result.PageInfo.HasNextPage = true
	}
	if n := len(result.Edges); n > 0 {
		result.PageInfo.EndCursor = result.Edges[n-1].Cursor
	}

	return result, nil
}

// GetCounts returns the stored counters of userID or [ErrUserNotFound].
func (r *followRepository) GetCounts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCountsQuery(r.db.builder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*followRepository.GetCounts").Msg("error building query")
		return models.FollowCounts{}, err
	}

	var counts models.FollowCounts
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&counts.UserID, &counts.FollowersCount, &counts.FollowingsCount)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FollowCounts{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*followRepository.GetCounts").Msg("error selecting counters")
		return models.FollowCounts{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return counts, nil
}

// RecountCounters rewrites drifted counters from the edge table.
func (r *followRepository) RecountCounters(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecountQuery(r.db.builder())
	if err != nil {
		log.Err(err).Str("func", "*followRepository.RecountCounters").Msg("error building query")
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*followRepository.RecountCounters").Msg("error recounting counters")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	fixed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if fixed > 0 {
		log.Warn().Str("func", "*followRepository.RecountCounters").Int64("fixed", fixed).Msg("follow counters drifted and were corrected")
	}

	return fixed, nil
}
