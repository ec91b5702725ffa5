// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the social graph REST API.
//
// [ServerAdapter] hides the transport from the command-line client. Non-2xx
// answers are mapped by mapHTTPError onto the sentinels of errors.go, so
// callers can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-social-graph/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// Credentials is the client-held session: the bearer token and, after a
// remembered login, the remember cookie pair.
type Credentials struct {
	AccessToken   string `json:"access_token,omitempty"`
	UserID        int64  `json:"user_id,omitempty"`
	RememberToken string `json:"remember_token,omitempty"`
}

// ServerAdapter defines communication with the social graph server.
type ServerAdapter interface {
	// SetCredentials replaces the session used by subsequent requests.
	SetCredentials(creds Credentials)
	// Credentials returns the current session, updated by Signup, Login,
	// Restore and Logout.
	Credentials() Credentials

	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	// Login stores the issued bearer token and, with RememberMe, the
	// remember cookies returned by the server.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	// Restore trades the stored remember cookies for a new bearer token.
	Restore(ctx context.Context) (models.User, error)
	// Logout forgets the remember digest on the server and drops the local
	// session.
	Logout(ctx context.Context) error

	GetUser(ctx context.Context, userID int64) (models.User, error)
	Follow(ctx context.Context, userID int64) (models.FollowStatus, error)
	Unfollow(ctx context.Context, userID int64) (models.FollowStatus, error)
	IsFollowing(ctx context.Context, followerID, followedUserID int64) (bool, error)
	Followers(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error)
	Followings(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error)
}
