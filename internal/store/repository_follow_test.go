// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-social-graph/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFollowRepo(t *testing.T) (*followRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &followRepository{db: db, logger: db.logger}, mock
}

func expectLock(mock sqlmock.Sqlmock, ids ...int64) {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	mock.ExpectQuery(`SELECT id FROM users WHERE id IN \(\$1,\$2\) ORDER BY id FOR UPDATE`).
		WillReturnRows(rows)
}

func TestCreateFollow_NewEdgeBumpsCounters(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectBegin()
	expectLock(mock, 1, 2)
	mock.ExpectExec(`INSERT INTO follows \(follower_id,followed_user_id,created_at\) VALUES \(\$1,\$2,\$3\) ON CONFLICT \(follower_id, followed_user_id\) DO NOTHING`).
		WithArgs(int64(1), int64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET followings_count = followings_count \+ 1 WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET followers_count = followers_count \+ 1 WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateFollow(context.Background(), models.Follow{FollowerID: 1, FollowedUserID: 2})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollow_ExistingEdgeLeavesCounters(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectBegin()
	expectLock(mock, 1, 2)
	mock.ExpectExec("INSERT INTO follows").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	created, err := repo.CreateFollow(context.Background(), models.Follow{FollowerID: 1, FollowedUserID: 2})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollow_MissingUser(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectBegin()
	expectLock(mock, 1)
	mock.ExpectRollback()

	_, err := repo.CreateFollow(context.Background(), models.Follow{FollowerID: 1, FollowedUserID: 2})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollow_SelfFollowCheck(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM users WHERE id IN \(\$1,\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec("INSERT INTO follows").
		WillReturnError(pgError(pgerrcode.CheckViolation, followsNoSelfFollow))
	mock.ExpectRollback()

	_, err := repo.CreateFollow(context.Background(), models.Follow{FollowerID: 3, FollowedUserID: 3})
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestCreateFollow_RetriesDeadlock(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectBegin()
	expectLock(mock, 1, 2)
	mock.ExpectExec("INSERT INTO follows").
		WillReturnError(pgError(pgerrcode.DeadlockDetected, ""))
	mock.ExpectRollback()

	mock.ExpectBegin()
	expectLock(mock, 1, 2)
	mock.ExpectExec("INSERT INTO follows").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET followings_count").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET followers_count").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateFollow(context.Background(), models.Follow{FollowerID: 1, FollowedUserID: 2})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFollow_RemovedEdgeDecrementsCounters(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectBegin()
	expectLock(mock, 1, 2)
	mock.ExpectExec(`DELETE FROM follows WHERE followed_user_id = \$1 AND follower_id = \$2`).
		WithArgs(int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET followings_count = followings_count - 1 WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET followers_count = followers_count - 1 WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteFollow(context.Background(), models.Follow{FollowerID: 1, FollowedUserID: 2})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFollow_NoEdge(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectBegin()
	expectLock(mock, 1, 2)
	mock.ExpectExec("DELETE FROM follows").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.DeleteFollow(context.Background(), models.Follow{FollowerID: 1, FollowedUserID: 2})
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowExists(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM follows WHERE followed_user_id = \$1 AND follower_id = \$2\)`).
		WithArgs(int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.FollowExists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFollowExists_Error(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FollowExists(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestGetCounts(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectQuery(`SELECT id, followers_count, followings_count FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "followers_count", "followings_count"}).AddRow(4, 10, 3))

	counts, err := repo.GetCounts(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, models.FollowCounts{UserID: 4, FollowersCount: 10, FollowingsCount: 3}, counts)
}

func TestGetCounts_NotFound(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectQuery("SELECT id, followers_count").
		WillReturnRows(sqlmock.NewRows([]string{"id", "followers_count", "followings_count"}))

	_, err := repo.GetCounts(context.Background(), 4)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListFollowers_PageWithNext(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectQuery("SELECT id, followers_count").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "followers_count", "followings_count"}).AddRow(1, 3, 0))

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(append(qualifiedUserColumns("u"), "f.created_at"))
	for i, id := range []int64{4, 3, 2} {
		rows.AddRow(id, "u@example.com", "user", "pw", nil, 0, 1, base, base, base.Add(-time.Duration(i)*time.Minute))
	}
	mock.ExpectQuery(`SELECT u.id, .*, f.created_at FROM follows f JOIN users u ON u.id = f.follower_id WHERE f.followed_user_id = \$1 ORDER BY f.created_at DESC, u.id DESC LIMIT 3`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	page, err := repo.ListFollowers(context.Background(), 1, models.PageRequest{First: 2})
	require.NoError(t, err)
	require.Len(t, page.Edges, 2)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.True(t, page.PageInfo.HasNextPage)
	assert.Equal(t, page.Edges[1].Cursor, page.PageInfo.EndCursor)

	c, err := decodeCursor(page.PageInfo.EndCursor)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.UserID)
	assert.True(t, c.CreatedAt.Equal(base.Add(-time.Minute)))
}

func TestListFollowings_AfterCursor(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	after := cursor{CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), UserID: 9}

	mock.ExpectQuery("SELECT id, followers_count").
		WillReturnRows(sqlmock.NewRows([]string{"id", "followers_count", "followings_count"}).AddRow(1, 0, 5))
	mock.ExpectQuery(`JOIN users u ON u.id = f.followed_user_id WHERE f.follower_id = \$1 AND \(f.created_at < \$2 OR \(f.created_at = \$3 AND u.id < \$4\)\)`).
		WithArgs(int64(1), after.CreatedAt, after.CreatedAt, int64(9)).
		WillReturnRows(sqlmock.NewRows(append(qualifiedUserColumns("u"), "f.created_at")))

	page, err := repo.ListFollowings(context.Background(), 1, models.PageRequest{After: encodeCursor(after)})
	require.NoError(t, err)
	assert.Empty(t, page.Edges)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.False(t, page.PageInfo.HasNextPage)
	assert.Empty(t, page.PageInfo.EndCursor)
}

func TestListFollowers_InvalidCursor(t *testing.T) {
	repo, _ := newTestFollowRepo(t)

	_, err := repo.ListFollowers(context.Background(), 1, models.PageRequest{After: "%%%"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestRecountCounters(t *testing.T) {
	repo, mock := newTestFollowRepo(t)

	mock.ExpectExec(`UPDATE users SET followers_count = \(SELECT COUNT\(\*\) FROM follows f WHERE f.followed_user_id = users.id\), followings_count = .* WHERE \(followers_count <> .* OR followings_count <> .*\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	fixed, err := repo.RecountCounters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), fixed)
}
