// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	"github.com/MKhiriev/go-social-graph/models"
)

const (
	FieldFollowerID     = "follower_id"
	FieldFollowedUserID = "followed_user_id"
)

// FollowValidator checks a follow edge before it reaches the store.
type FollowValidator struct{}

func NewFollowValidator() Validator {
	return &FollowValidator{}
}

// Validate accepts [models.Follow] and *models.Follow. Non-positive ids
// yield [ErrInvalidUserID]; an edge onto its own follower yields
// [ErrSelfFollow].
func (v *FollowValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Follow:
		return v.validateFollow(value, fields...)
	case *models.Follow:
		return v.validateFollow(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *FollowValidator) validateFollow(f models.Follow, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFollowerID, FieldFollowedUserID}
	}

	for _, field := range fields {
		switch field {
		case FieldFollowerID:
			if f.FollowerID <= 0 {
				return ErrInvalidUserID
			}
		case FieldFollowedUserID:
			if f.FollowedUserID <= 0 {
				return ErrInvalidUserID
			}
			if f.FollowedUserID == f.FollowerID {
				return ErrSelfFollow
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
