// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-social-graph/models"
	"github.com/stretchr/testify/assert"
)

func TestFollowValidator(t *testing.T) {
	tests := []struct {
		name    string
		obj     any
		wantErr error
	}{
		{name: "valid", obj: models.Follow{FollowerID: 1, FollowedUserID: 2}},
		{name: "valid pointer", obj: &models.Follow{FollowerID: 2, FollowedUserID: 1}},
		{name: "self follow", obj: models.Follow{FollowerID: 3, FollowedUserID: 3}, wantErr: ErrSelfFollow},
		{name: "zero follower", obj: models.Follow{FollowedUserID: 3}, wantErr: ErrInvalidUserID},
		{name: "negative followed", obj: models.Follow{FollowerID: 1, FollowedUserID: -1}, wantErr: ErrInvalidUserID},
		{name: "unsupported", obj: "follow", wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFollowValidator().Validate(context.Background(), tt.obj)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFollowValidator_UnknownField(t *testing.T) {
	err := NewFollowValidator().Validate(context.Background(), models.Follow{FollowerID: 1, FollowedUserID: 2}, "created_at")
	assert.ErrorIs(t, err, ErrUnknownField)
}
