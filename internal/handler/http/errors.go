// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrMissingRememberCookies is returned by session restore when either
	// the user_id or the remember_token cookie is absent.
	ErrMissingRememberCookies = errors.New("remember cookies are missing")

	errInvalidPathParam  = errors.New("invalid path parameter")
	errInvalidQueryParam = errors.New("invalid query parameter")
	errTooManyRequests   = errors.New("too many requests")
	errNoUserInContext   = errors.New("no authenticated user in request context")
	errRouteNotFound     = errors.New("route not found")
)
