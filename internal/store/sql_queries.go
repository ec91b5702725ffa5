// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-social-graph/models"
	"github.com/Masterminds/squirrel"
)

// userColumns is the column list scanned by scanUser, in order.
var userColumns = []string{
	"id",
	"email",
	"name",
	"password_digest",
	"remember_digest",
	"followers_count",
	"followings_count",
	"created_at",
	"updated_at",
}

func qualifiedUserColumns(alias string) []string {
	cols := make([]string, len(userColumns))
	for i, c := range userColumns {
		cols[i] = alias + "." + c
	}
	return cols
}

// counterChange is a SET clause applied to one of the follow counters.
type counterChange struct {
	column string
	expr   string
}

var (
	incrementFollowers  = counterChange{"followers_count", "followers_count + 1"}
	decrementFollowers  = counterChange{"followers_count", "followers_count - 1"}
	incrementFollowings = counterChange{"followings_count", "followings_count + 1"}
	decrementFollowings = counterChange{"followings_count", "followings_count - 1"}
)

const (
	countFollowersOf  = "(SELECT COUNT(*) FROM follows f WHERE f.followed_user_id = users.id)"
	countFollowingsOf = "(SELECT COUNT(*) FROM follows f WHERE f.follower_id = users.id)"

	// Ids of the users a given user follows, and of its followers.
	followedBySubquery  = "SELECT followed_user_id FROM follows WHERE follower_id = ?"
	followersOfSubquery = "SELECT follower_id FROM follows WHERE followed_user_id = ?"
)

func buildInsertUserQuery(b squirrel.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(models.User{}.TableName()).
		Columns("email", "name", "password_digest", "created_at", "updated_at").
		Values(user.Email, user.Name, user.PasswordDigest, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectUserQuery selects one user matching where.
func buildSelectUserQuery(b squirrel.StatementBuilderType, where squirrel.Sqlizer) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery sets only the fields present in changes.
func buildUpdateUserQuery(b squirrel.StatementBuilderType, changes models.UserChanges, now time.Time) (string, []any, error) {
	set := map[string]any{"updated_at": now}
	if changes.Email != nil {
		set["email"] = *changes.Email
	}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.PasswordDigest != nil {
		set["password_digest"] = *changes.PasswordDigest
	}
	if changes.ClearRememberDigest {
		set["remember_digest"] = nil
	}

	query, args, err := b.Update(models.User{}.TableName()).
		SetMap(set).
		Where(squirrel.Eq{"id": changes.UserID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildLockUsersQuery selects the given user rows in id order, locking them
// where the dialect supports row locks. A fixed lock order keeps concurrent
// follow and unfollow calls on crossing pairs from deadlocking.
func buildLockUsersQuery(b squirrel.StatementBuilderType, lockSuffix string, ids ...int64) (string, []any, error) {
	q := b.Select("id").
		From(models.User{}.TableName()).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id")
	if lockSuffix != "" {
		q = q.Suffix(lockSuffix)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildAdjustCounterQuery applies a counter expression to one user row.
func buildAdjustCounterQuery(b squirrel.StatementBuilderType, change counterChange, userID int64) (string, []any, error) {
	query, args, err := b.Update(models.User{}.TableName()).
		Set(change.column, squirrel.Expr(change.expr)).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildAdjustCountersInQuery applies a counter expression to every user
// returned by the subquery.
func buildAdjustCountersInQuery(b squirrel.StatementBuilderType, change counterChange, subquery string, userID int64) (string, []any, error) {
	query, args, err := b.Update(models.User{}.TableName()).
		Set(change.column, squirrel.Expr(change.expr)).
		Where("id IN ("+subquery+")", userID).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertFollowQuery(b squirrel.StatementBuilderType, follow models.Follow) (string, []any, error) {
	query, args, err := b.Insert(models.Follow{}.TableName()).
		Columns("follower_id", "followed_user_id", "created_at").
		Values(follow.FollowerID, follow.FollowedUserID, follow.CreatedAt).
		Suffix("ON CONFLICT (follower_id, followed_user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteFollowQuery(b squirrel.StatementBuilderType, follow models.Follow) (string, []any, error) {
	query, args, err := b.Delete(models.Follow{}.TableName()).
		Where(squirrel.Eq{
			"follower_id":      follow.FollowerID,
			"followed_user_id": follow.FollowedUserID,
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFollowExistsQuery(b squirrel.StatementBuilderType, followerID, followedUserID int64) (string, []any, error) {
	sub := squirrel.Select("1").
		From(models.Follow{}.TableName()).
		Where(squirrel.Eq{
			"follower_id":      followerID,
			"followed_user_id": followedUserID,
		})

	query, args, err := b.Select().
		Column(squirrel.Expr("EXISTS (?)", sub)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// edgeDirection describes which side of the follows table a list walks.
type edgeDirection struct {
	// anchor is the column holding the listed user's id.
	anchor string
	// other is the column joined to users.
	other string
}

var (
	followersDirection  = edgeDirection{anchor: "followed_user_id", other: "follower_id"}
	followingsDirection = edgeDirection{anchor: "follower_id", other: "followed_user_id"}
)

// buildListEdgesQuery selects one page of users joined through follows,
// newest edge first, with keyset pagination on (created_at, user id). It
// fetches limit+1 rows so the caller can tell whether a next page exists.
func buildListEdgesQuery(b squirrel.StatementBuilderType, dir edgeDirection, userID int64, after *cursor, limit int) (string, []any, error) {
	cols := append(qualifiedUserColumns("u"), "f.created_at")

	q := b.Select(cols...).
		From(models.Follow{}.TableName() + " f").
		Join(models.User{}.TableName() + " u ON u.id = f." + dir.other).
		Where(squirrel.Eq{"f." + dir.anchor: userID})

	if after != nil {
		q = q.Where(squirrel.Or{
			squirrel.Lt{"f.created_at": after.CreatedAt},
			squirrel.And{
				squirrel.Eq{"f.created_at": after.CreatedAt},
				squirrel.Lt{"u.id": after.UserID},
			},
		})
	}

	query, args, err := q.
		OrderBy("f.created_at DESC", "u.id DESC").
		Limit(uint64(limit + 1)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSelectCountsQuery(b squirrel.StatementBuilderType, userID int64) (string, []any, error) {
	query, args, err := b.Select("id", "followers_count", "followings_count").
		From(models.User{}.TableName()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildRecountQuery rewrites the counters of every user whose stored values
// differ from the edge counts.
func buildRecountQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	query, args, err := b.Update(models.User{}.TableName()).
		Set("followers_count", squirrel.Expr(countFollowersOf)).
		Set("followings_count", squirrel.Expr(countFollowingsOf)).
		Where(squirrel.Or{
			squirrel.Expr("followers_count <> " + countFollowersOf),
			squirrel.Expr("followings_count <> " + countFollowingsOf),
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
