// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-social-graph/internal/crypto"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/store"
	"github.com/MKhiriev/go-social-graph/internal/validators"
	"github.com/MKhiriev/go-social-graph/models"
)

type userService struct {
	userRepository store.UserRepository
	digester       crypto.Digester
	logger         *logger.Logger
}

func NewUserService(storages *store.Storages, digester crypto.Digester, logger *logger.Logger) UserService {
	return &userService{
		userRepository: storages.UserRepository,
		digester:       digester,
		logger:         logger,
	}
}

func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, notFound(err)
	}

	return user, nil
}

func (s *userService) GetUserByName(ctx context.Context, name string) (models.User, error) {
	user, err := s.userRepository.FindUserByName(ctx, name)
	if err != nil {
		return models.User{}, notFound(err)
	}

	return user, nil
}

// UpdateUser writes the fields present in upd. A new password is digested
// here and invalidates any remember token.
func (s *userService) UpdateUser(ctx context.Context, upd models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if upd.IsEmpty() {
		return s.GetUser(ctx, upd.UserID)
	}

	changes := models.UserChanges{UserID: upd.UserID, Name: upd.Name}
	if upd.Email != nil {
		email := models.NormalizeEmail(*upd.Email)
		changes.Email = &email
	}
	if upd.Password != nil {
		digest, err := s.digester.Digest(*upd.Password)
		if err != nil {
			if errors.Is(err, crypto.ErrSecretTooLong) {
				return models.User{}, validators.NewValidationError(validators.FieldPassword, err.Error())
			}
			log.Err(err).Str("func", "*userService.UpdateUser").Msg("error digesting password")
			return models.User{}, fmt.Errorf("error digesting password: %w", err)
		}
		changes.PasswordDigest = &digest
		changes.ClearRememberDigest = true
	}

	user, err := s.userRepository.UpdateUser(ctx, changes)
	if err != nil {
		if vErr := uniquenessError(err); vErr != nil {
			return models.User{}, vErr
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("func", "*userService.UpdateUser").Int64("user_id", upd.UserID).Msg("user update ended with error")
		}
		return models.User{}, notFound(err)
	}

	return user, nil
}

// DeleteUser removes the account together with its follow edges and posts.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return notFound(err)
	}

	return nil
}
