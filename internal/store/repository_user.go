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

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads the columns listed in userColumns, followed by extra.
func scanUser(row rowScanner, extra ...any) (models.User, error) {
	var (
		user           models.User
		rememberDigest sql.NullString
	)

	dest := []any{
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.PasswordDigest,
		&rememberDigest,
		&user.FollowersCount,
		&user.FollowingsCount,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.User{}, err
	}

	if rememberDigest.Valid {
		user.RememberDigest = &rememberDigest.String
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return user, nil
}

// CreateUser inserts a new account and returns it with the server-assigned
// id and timestamps. Counters start at zero.
//
// Error handling:
//   - unique index on lower(email) → [ErrEmailAlreadyExists].
//   - unique index on lower(name) → [ErrNameAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := nowUTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.FollowersCount = 0
	user.FollowingsCount = 0
	user.RememberDigest = nil

	query, args, err := buildInsertUserQuery(r.db.builder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, err
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		if cErr := r.db.constraintError(err); cErr != nil {
			log.Debug().Err(err).Str("func", "*userRepository.CreateUser").Msg("constraint violation")
			return models.User{}, cErr
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindUserByID returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", squirrel.Eq{"id": userID})
}

// FindUserByEmail looks the user up case-insensitively. The stored e-mail is
// already lower-case, so the argument is normalized the same way.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", squirrel.Eq{"lower(email)": models.NormalizeEmail(email)})
}

// FindUserByName looks the user up case-insensitively.
func (r *userRepository) FindUserByName(ctx context.Context, name string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByName", squirrel.Expr("lower(name) = lower(?)", name))
}

func (r *userRepository) findUser(ctx context.Context, fn string, where squirrel.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder(), where)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// UpdateUser applies the non-nil fields of changes, bumps updated_at and
// returns the stored row. The follow counters are never touched here.
//
// Error handling:
//   - no row with changes.UserID → [ErrUserNotFound].
//   - unique collisions → [ErrEmailAlreadyExists] / [ErrNameAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, changes models.UserChanges) (models.User, error) {
	log := logger.FromContext(ctx)
	b := r.db.builder()

	var user models.User
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildUpdateUserQuery(b, changes, nowUTC())
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected == 0 {
			return ErrUserNotFound
		}

		query, args, err = buildSelectUserQuery(b, squirrel.Eq{"id": changes.UserID})
		if err != nil {
			return err
		}
		user, err = scanUser(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		return nil
	})
	if err != nil {
		if cErr := r.db.constraintError(err); cErr != nil {
			log.Debug().Err(err).Str("func", "*userRepository.UpdateUser").Msg("constraint violation")
			return models.User{}, cErr
		}
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		}
		return models.User{}, err
	}

	return user, nil
}

// DeleteUser removes the account in one transaction. Before the row goes
// (and its follow edges with it, via ON DELETE CASCADE) the followers_count
// of every user it follows and the followings_count of every follower are
// decremented, so counters keep matching the remaining edges.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)
	b := r.db.builder()

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := lockUsers(ctx, tx, b, r.db.dialect.LockSuffix, userID); err != nil {
			return err
		}

		adjustments := []struct {
			change   counterChange
			subquery string
		}{
			{decrementFollowers, followedBySubquery},
			{decrementFollowings, followersOfSubquery},
		}
		for _, a := range adjustments {
			query, args, err := buildAdjustCountersInQuery(b, a.change, a.subquery, userID)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		query, args, err := b.Delete(models.User{}.TableName()).
			Where(squirrel.Eq{"id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error deleting user")
		}
		return err
	}

	log.Info().Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("user deleted")
	return nil
}

// lockUsers selects (and on Postgres locks) the given user rows in id order.
// It returns [ErrUserNotFound] when any of them is missing.
func lockUsers(ctx context.Context, tx *sql.Tx, b squirrel.StatementBuilderType, lockSuffix string, ids ...int64) error {
	query, args, err := buildLockUsersQuery(b, lockSuffix, ids...)
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		found++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if found < len(uniqueIDs(ids)) {
		return ErrUserNotFound
	}

	return nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
