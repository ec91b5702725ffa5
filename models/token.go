// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed JWT access token issued after signup, login or a
// successful remember-token restore.
//
// UserID caches the parsed "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user id from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to user id: %w", err)
	}

	return userID, nil
}

// String implements [fmt.Stringer].
func (t *Token) String() string {
	return t.SignedString
}

// Session is returned by a successful login: the access token and, when the
// caller asked to be remembered, the plaintext remember token. The remember
// token is never stored; only its digest is.
type Session struct {
	User          User   `json:"user"`
	AccessToken   string `json:"-"`
	RememberToken string `json:"-"`
}

// Remembered reports whether the session carries a remember token.
func (s Session) Remembered() bool {
	return s.RememberToken != ""
}
