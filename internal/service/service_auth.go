// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/crypto"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/store"
	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/MKhiriev/go-social-graph/internal/validators"
	"github.com/MKhiriev/go-social-graph/models"
)

// dummyPassword is digested once and verified against when a login names an
// unknown e-mail, so both failure paths cost one bcrypt comparison.
const dummyPassword = "not-a-real-password"

// authService is the concrete implementation of AuthService.
type authService struct {
	// userRepository creates and looks up accounts.
	userRepository store.UserRepository

	// sessionRepository reads and writes the remember digest.
	sessionRepository store.SessionRepository

	// credentials digests passwords and remember tokens and issues new
	// remember tokens.
	credentials crypto.CredentialManager

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	dummyOnce   sync.Once
	dummyDigest string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService over the user and session
// repositories.
//
// The returned service is safe for concurrent use.
func NewAuthService(storages *store.Storages, credentials crypto.CredentialManager, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    storages.UserRepository,
		sessionRepository: storages.SessionRepository,
		credentials:       credentials,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// RegisterUser creates a new account from an already validated request.
//
// The e-mail is stored lower-cased. A collision on e-mail or name is
// reported as a *validators.ValidationError on that field.
func (a *authService) RegisterUser(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	digest, err := a.credentials.Digest(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrSecretTooLong) {
			return models.User{}, validators.NewValidationError(validators.FieldPassword, err.Error())
		}
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error digesting password")
		return models.User{}, fmt.Errorf("error digesting password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:          models.NormalizeEmail(req.Email),
		Name:           req.Name,
		PasswordDigest: digest,
	})
	if err != nil {
		if vErr := uniquenessError(err); vErr != nil {
			return models.User{}, vErr
		}
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.RegisterUser").Int64("user_id", user.UserID).Msg("user registered")
	return user, nil
}

// Login authenticates by e-mail and password.
//
// An unknown e-mail and a wrong password both yield ErrWrongCredentials; the
// unknown e-mail path still runs one digest comparison.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		a.credentials.Verify(req.Password, a.dummy())
		log.Debug().Str("func", "*authService.Login").Msg("login for unknown email")
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.credentials.Verify(req.Password, user.PasswordDigest) {
		log.Debug().Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return user, nil
}

func (a *authService) dummy() string {
	a.dummyOnce.Do(func() {
		digest, err := a.credentials.Digest(dummyPassword)
		if err != nil {
			a.logger.Err(err).Str("func", "*authService.dummy").Msg("error digesting dummy password")
			return
		}
		a.dummyDigest = digest
	})

	return a.dummyDigest
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, wrong signature, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Remember generates a remember token, persists its digest in a single
// write and returns the plaintext, which is never stored.
func (a *authService) Remember(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContext(ctx)

	token, err := a.credentials.NewToken()
	if err != nil {
		log.Err(err).Str("func", "*authService.Remember").Msg("error generating remember token")
		return "", fmt.Errorf("%w: %w", ErrRememberFailed, err)
	}

	digest, err := a.credentials.Digest(token)
	if err != nil {
		log.Err(err).Str("func", "*authService.Remember").Msg("error digesting remember token")
		return "", fmt.Errorf("%w: %w", ErrRememberFailed, err)
	}

	if err = a.sessionRepository.SetRememberDigest(ctx, userID, &digest); err != nil {
		return "", notFound(err)
	}

	log.Debug().Str("func", "*authService.Remember").Int64("user_id", userID).Msg("remember digest stored")
	return token, nil
}

// IsAuthenticated reports whether token matches the stored remember digest.
// A missing digest or an empty token is a plain false.
func (a *authService) IsAuthenticated(ctx context.Context, userID int64, token string) (bool, error) {
	digest, err := a.sessionRepository.GetRememberDigest(ctx, userID)
	if err != nil {
		return false, notFound(err)
	}

	if digest == nil || token == "" {
		return false, nil
	}

	return a.credentials.Verify(token, *digest), nil
}

// Forget clears the remember digest. Forgetting a user without one is not
// an error.
func (a *authService) Forget(ctx context.Context, userID int64) error {
	if err := a.sessionRepository.SetRememberDigest(ctx, userID, nil); err != nil {
		return notFound(err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*authService.Forget").Int64("user_id", userID).Msg("remember digest cleared")
	return nil
}

// notFound maps the store's missing-user error to ErrUserNotFound and
// passes every other error through.
func notFound(err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	return err
}

// uniquenessError turns a unique index collision into a field-level
// validation error. It returns nil for any other error.
func uniquenessError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return validators.NewValidationError(validators.FieldEmail, validators.MessageTaken)
	case errors.Is(err, store.ErrNameAlreadyExists):
		return validators.NewValidationError(validators.FieldName, validators.MessageTaken)
	}
	return nil
}
