// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-social-graph/internal/validators"
	"github.com/MKhiriev/go-social-graph/models"
)

// FieldFirst names the page size in validation errors.
const FieldFirst = "first"

// AuthValidationService validates requests before they reach the wrapped
// AuthService. E-mails are normalized before they are validated.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, req models.SignupRequest) (models.User, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("error during signup validation: %w", err)
	}

	return v.inner.RegisterUser(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("error during login validation: %w", err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if err := validateUserID(user.UserID); err != nil {
		return models.Token{}, err
	}

	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Remember(ctx context.Context, userID int64) (string, error) {
	if err := validateUserID(userID); err != nil {
		return "", err
	}

	return v.inner.Remember(ctx, userID)
}

func (v *AuthValidationService) IsAuthenticated(ctx context.Context, userID int64, token string) (bool, error) {
	if err := validateUserID(userID); err != nil {
		return false, err
	}

	return v.inner.IsAuthenticated(ctx, userID, token)
}

func (v *AuthValidationService) Forget(ctx context.Context, userID int64) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	return v.inner.Forget(ctx, userID)
}

// UserValidationService validates account reads and updates.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.inner = inner
	return v
}

func (v *UserValidationService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if err := validateUserID(userID); err != nil {
		return models.User{}, err
	}

	return v.inner.GetUser(ctx, userID)
}

func (v *UserValidationService) GetUserByName(ctx context.Context, name string) (models.User, error) {
	if name == "" {
		return models.User{}, validators.NewValidationError(validators.FieldName, validators.MessageBlank)
	}

	return v.inner.GetUserByName(ctx, name)
}

func (v *UserValidationService) UpdateUser(ctx context.Context, upd models.UserUpdate) (models.User, error) {
	if upd.Email != nil {
		email := models.NormalizeEmail(*upd.Email)
		upd.Email = &email
	}
	if err := v.validator.Validate(ctx, upd); err != nil {
		return models.User{}, fmt.Errorf("error during user update validation: %w", err)
	}

	return v.inner.UpdateUser(ctx, upd)
}

func (v *UserValidationService) DeleteUser(ctx context.Context, userID int64) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	return v.inner.DeleteUser(ctx, userID)
}

// FollowValidationService rejects malformed ids and self-follows before the
// store is reached.
type FollowValidationService struct {
	inner     FollowService
	validator validators.Validator
}

func NewFollowValidationService() FollowServiceWrapper {
	return &FollowValidationService{
		validator: validators.NewFollowValidator(),
	}
}

func (v *FollowValidationService) Wrap(inner FollowService) FollowService {
	v.inner = inner
	return v
}

// IsFollowing is false for a user and itself without asking the store.
func (v *FollowValidationService) IsFollowing(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	if err := v.validator.Validate(ctx, models.Follow{FollowerID: followerID, FollowedUserID: followedUserID}); err != nil {
		if followerID > 0 && followerID == followedUserID {
			return false, nil
		}
		return false, err
	}

	return v.inner.IsFollowing(ctx, followerID, followedUserID)
}

func (v *FollowValidationService) Follow(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	if err := v.validator.Validate(ctx, models.Follow{FollowerID: followerID, FollowedUserID: followedUserID}); err != nil {
		return false, err
	}

	return v.inner.Follow(ctx, followerID, followedUserID)
}

// Unfollow lets a user and itself through so the store can report a missing
// user. An existing user unfollowing itself changes nothing.
func (v *FollowValidationService) Unfollow(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	if err := v.validator.Validate(ctx, models.Follow{FollowerID: followerID, FollowedUserID: followedUserID}); err != nil {
		if followerID <= 0 || followerID != followedUserID {
			return false, err
		}
	}

	return v.inner.Unfollow(ctx, followerID, followedUserID)
}

func (v *FollowValidationService) Followers(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	if err := validatePage(userID, page); err != nil {
		return models.UserPage{}, err
	}

	return v.inner.Followers(ctx, userID, page)
}

func (v *FollowValidationService) Followings(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	if err := validatePage(userID, page); err != nil {
		return models.UserPage{}, err
	}

	return v.inner.Followings(ctx, userID, page)
}

func (v *FollowValidationService) Counts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	if err := validateUserID(userID); err != nil {
		return models.FollowCounts{}, err
	}

	return v.inner.Counts(ctx, userID)
}

func (v *FollowValidationService) RecountCounters(ctx context.Context) (int64, error) {
	return v.inner.RecountCounters(ctx)
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return validators.ErrInvalidUserID
	}
	return nil
}

func validatePage(userID int64, page models.PageRequest) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if page.First < 0 {
		return validators.NewValidationError(FieldFirst, validators.MessageInvalid)
	}
	return nil
}
