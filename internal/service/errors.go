// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-social-graph/internal/app"
	"github.com/MKhiriev/go-social-graph/internal/validators"
)

var (
	// ErrUserNotFound is returned when an operation references a user that
	// does not exist. It wraps the store error it was mapped from.
	ErrUserNotFound = errors.New(app.MsgUserNotFound)

	// ErrSelfFollow rejects an edge from a user onto itself. It is the same
	// sentinel the follow validator returns.
	ErrSelfFollow = validators.ErrSelfFollow

	// ErrWrongCredentials is returned by Login for an unknown e-mail and for
	// a wrong password alike.
	ErrWrongCredentials = errors.New(app.MsgInvalidCredentials)

	// ErrForbidden is returned when a caller acts on another user's account.
	ErrForbidden = errors.New(app.MsgAccessDenied)

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New(app.MsgTokenIsExpiredOrInvalid)
	ErrRememberFailed          = errors.New("remember token could not be stored")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
