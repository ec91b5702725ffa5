// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-social-graph/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts. E-mails are expected lower-cased by the
// caller; lookups by e-mail and name are case-insensitive.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByName(ctx context.Context, name string) (models.User, error)
	UpdateUser(ctx context.Context, changes models.UserChanges) (models.User, error)
	// DeleteUser removes the account, its follow edges in both directions and
	// its posts, adjusting the counters of every counterpart user.
	DeleteUser(ctx context.Context, userID int64) error
}

// SessionRepository stores the remember digest of a user. Every call is a
// single-statement write or read.
type SessionRepository interface {
	// SetRememberDigest overwrites the digest; nil clears it.
	SetRememberDigest(ctx context.Context, userID int64, digest *string) error
	GetRememberDigest(ctx context.Context, userID int64) (*string, error)
}

// FollowRepository maintains follow edges and the denormalized counters.
type FollowRepository interface {
	// CreateFollow inserts the edge and bumps both counters. It reports false
	// when the edge already existed.
	CreateFollow(ctx context.Context, follow models.Follow) (bool, error)
	// DeleteFollow removes the edge and decrements both counters. It reports
	// false when there was no edge.
	DeleteFollow(ctx context.Context, follow models.Follow) (bool, error)
	FollowExists(ctx context.Context, followerID, followedUserID int64) (bool, error)
	ListFollowers(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error)
	ListFollowings(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error)
	GetCounts(ctx context.Context, userID int64) (models.FollowCounts, error)
	// RecountCounters recomputes every user's counters from the edges and
	// returns the number of users that were corrected.
	RecountCounters(ctx context.Context) (int64, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
