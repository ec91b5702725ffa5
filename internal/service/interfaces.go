// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-social-graph/models"
)

// AuthService covers signup, password login, access tokens and the
// remember-token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.SignupRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Remember issues a new remember token, stores its digest and returns
	// the plaintext. Any previously issued token stops authenticating.
	Remember(ctx context.Context, userID int64) (string, error)
	// IsAuthenticated verifies token against the stored remember digest.
	// It is false when no digest is stored.
	IsAuthenticated(ctx context.Context, userID int64, token string) (bool, error)
	// Forget clears the remember digest.
	Forget(ctx context.Context, userID int64) error
}

type UserService interface {
	GetUser(ctx context.Context, userID int64) (models.User, error)
	GetUserByName(ctx context.Context, name string) (models.User, error)
	// UpdateUser applies a partial update. A password change also clears the
	// remember digest.
	UpdateUser(ctx context.Context, upd models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type FollowService interface {
	IsFollowing(ctx context.Context, followerID, followedUserID int64) (bool, error)
	// Follow creates the edge if absent and reports whether it was created.
	Follow(ctx context.Context, followerID, followedUserID int64) (bool, error)
	// Unfollow removes the edge if present and reports whether it was removed.
	Unfollow(ctx context.Context, followerID, followedUserID int64) (bool, error)
	Followers(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error)
	Followings(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error)
	Counts(ctx context.Context, userID int64) (models.FollowCounts, error)
	RecountCounters(ctx context.Context) (int64, error)
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.BuildInfo
}

// AuthServiceWrapper, UserServiceWrapper and FollowServiceWrapper decorate a
// service with additional behavior such as validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

type UserServiceWrapper interface {
	Wrap(UserService) UserService
}

type FollowServiceWrapper interface {
	Wrap(FollowService) FollowService
}
