// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-social-graph/models"
)

const (
	FieldEmail                = "email"
	FieldName                 = "name"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldUserID               = "user_id"
)

const (
	MaxEmailLength    = 255
	MaxNameLength     = 20
	MinPasswordLength = 3
	MaxPasswordLength = 72
)

// emailRegexp is the HTML5 "valid e-mail address" grammar: a dot-atom local
// part and a domain of LDH labels up to 63 characters each.
var emailRegexp = regexp.MustCompile(
	`\A[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\z`,
)

// UserValidator checks account data: e-mail syntax and length, name
// presence and length, password length and confirmation.
type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate accepts [models.SignupRequest], [models.UserUpdate],
// [models.LoginRequest] and their pointers. Every failed field is reported;
// the result is an errors.Join of *ValidationError values.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.UserUpdate:
		return v.validateUpdate(value, fields...)
	case *models.UserUpdate:
		return v.validateUpdate(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignup(req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldName, FieldPassword, FieldPasswordConfirmation}
	}

	var errs []error
	for _, f := range fields {
		switch f {
		case FieldEmail:
			errs = append(errs, validateEmail(req.Email))
		case FieldName:
			errs = append(errs, validateName(req.Name))
		case FieldPassword:
			errs = append(errs, validatePassword(req.Password))
		case FieldPasswordConfirmation:
			if req.PasswordConfirmation != "" && req.PasswordConfirmation != req.Password {
				errs = append(errs, NewValidationError(FieldPasswordConfirmation, MessageConfirmation))
			}
		default:
			return ErrUnknownField
		}
	}

	return errors.Join(errs...)
}

// validateUpdate checks only the fields the update carries.
func (v *UserValidator) validateUpdate(upd models.UserUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldEmail, FieldName, FieldPassword}
	}

	var errs []error
	for _, f := range fields {
		switch f {
		case FieldUserID:
			if upd.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldEmail:
			if upd.Email != nil {
				errs = append(errs, validateEmail(*upd.Email))
			}
		case FieldName:
			if upd.Name != nil {
				errs = append(errs, validateName(*upd.Name))
			}
		case FieldPassword:
			if upd.Password != nil {
				errs = append(errs, validatePassword(*upd.Password))
			}
		default:
			return ErrUnknownField
		}
	}

	return errors.Join(errs...)
}

// validateLogin only checks presence; wrong credentials are not a
// validation concern.
func (v *UserValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	var errs []error
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if isBlank(req.Email) {
				errs = append(errs, NewValidationError(FieldEmail, MessageBlank))
			}
		case FieldPassword:
			if req.Password == "" {
				errs = append(errs, NewValidationError(FieldPassword, MessageBlank))
			}
		default:
			return ErrUnknownField
		}
	}

	return errors.Join(errs...)
}

// validateEmail expects an already normalized address.
func validateEmail(email string) error {
	switch {
	case isBlank(email):
		return NewValidationError(FieldEmail, MessageBlank)
	case len(email) > MaxEmailLength:
		return NewValidationError(FieldEmail, tooLong(MaxEmailLength, "characters"))
	case !emailRegexp.MatchString(email):
		return NewValidationError(FieldEmail, MessageInvalid)
	}

	return nil
}

func validateName(name string) error {
	switch {
	case isBlank(name):
		return NewValidationError(FieldName, MessageBlank)
	case utf8.RuneCountInString(name) > MaxNameLength:
		return NewValidationError(FieldName, tooLong(MaxNameLength, "characters"))
	}

	return nil
}

func validatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	switch {
	case isBlank(password):
		return NewValidationError(FieldPassword, MessageBlank)
	case length < MinPasswordLength:
		return NewValidationError(FieldPassword, tooShort(MinPasswordLength, "characters"))
	case length > MaxPasswordLength:
		return NewValidationError(FieldPassword, tooLong(MaxPasswordLength, "characters"))
	case len(password) > MaxPasswordLength:
		// multi-byte runes can pass the character limit and still overflow bcrypt
		return NewValidationError(FieldPassword, tooLong(MaxPasswordLength, "bytes"))
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
