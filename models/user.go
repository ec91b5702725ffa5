// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// User is a registered account together with its credential digests and the
// denormalized follow counters.
//
// Digests are never serialized: only the identity, profile and counters leave
// the process.
type User struct {
	// UserID is the numeric primary key assigned by the store.
	UserID int64 `json:"id"`

	// Email is always stored lower-cased and is unique case-insensitively.
	Email string `json:"email"`

	// Name is the public handle, unique case-insensitively.
	Name string `json:"name"`

	// PasswordDigest is the salted bcrypt digest of the account password.
	PasswordDigest string `json:"-"`

	// RememberDigest is the digest of the active remember token, or nil when
	// no persistent session exists.
	RememberDigest *string `json:"-"`

	// FollowersCount equals the number of follow edges pointing at this user.
	FollowersCount int64 `json:"followers_count"`

	// FollowingsCount equals the number of follow edges leaving this user.
	FollowingsCount int64 `json:"followings_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasRememberDigest reports whether a persistent session is active.
func (u User) HasRememberDigest() bool {
	return u.RememberDigest != nil && *u.RememberDigest != ""
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupRequest carries the plaintext data supplied when an account is created.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`

	// PasswordConfirmation is optional; when non-empty it must equal Password.
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// LoginRequest carries the credentials of a login attempt.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// UserUpdate is a partial profile update requested by the account owner.
// Nil fields are left untouched.
type UserUpdate struct {
	UserID   int64   `json:"-"`
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Name == nil && u.Password == nil
}

// UserChanges is the storage-level form of [UserUpdate]: the password has
// already been replaced by its digest.
type UserChanges struct {
	UserID         int64
	Email          *string
	Name           *string
	PasswordDigest *string

	// ClearRememberDigest drops the active persistent session together with
	// the update.
	ClearRememberDigest bool
}
