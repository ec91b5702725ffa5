// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-social-graph services and HTTP handlers.
//
// All Msg* constants are human-readable message strings that end up in HTTP
// response bodies or log entries. Keeping them in one place keeps the wording
// of the service errors and the API answers identical.
package app

const (
	// MsgInvalidCredentials is returned for an unknown email as well as for
	// a wrong password, so that a login attempt reveals neither.
	MsgInvalidCredentials = "invalid email/password combination"

	// MsgUserNotFound is returned when the addressed user does not exist.
	MsgUserNotFound = "user not found"

	// MsgSelfFollow is returned when a user tries to follow themselves.
	MsgSelfFollow = "user cannot follow themselves"

	// MsgAccessDenied is returned when the authenticated user acts on an
	// account that is not their own.
	MsgAccessDenied = "action is not allowed for this user"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgInvalidUserID is returned for a non-positive user id.
	MsgInvalidUserID = "invalid user ID"
)
