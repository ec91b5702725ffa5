// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-social-graph/internal/app"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation is wrapped by every [ValidationError].
	ErrValidation = errors.New("validation failed")

	// ErrSelfFollow is returned when a follow edge would point at its own
	// follower.
	ErrSelfFollow = errors.New(app.MsgSelfFollow)

	ErrInvalidUserID = errors.New(app.MsgInvalidUserID)
)

// Rails-style messages attached to [ValidationError].
const (
	MessageBlank          = "can't be blank"
	MessageInvalid        = "is invalid"
	MessageTaken          = "has already been taken"
	MessageConfirmation   = "doesn't match password"
	messageTooLongFormat  = "is too long (maximum is %d %s)"
	messageTooShortFormat = "is too short (minimum is %d %s)"
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError builds a [ValidationError] for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap makes every ValidationError match [ErrValidation].
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldErrors collects every [ValidationError] inside err, walking both
// single and joined wrap chains. The order follows the join order.
func FieldErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}

	var out []*ValidationError
	var walk func(error)
	walk = func(e error) {
		if ve, ok := e.(*ValidationError); ok {
			out = append(out, ve)
			return
		}

		switch w := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range w.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			if inner := w.Unwrap(); inner != nil {
				walk(inner)
			}
		}
	}
	walk(err)

	return out
}

func tooLong(limit int, unit string) string {
	return fmt.Sprintf(messageTooLongFormat, limit, unit)
}

func tooShort(limit int, unit string) string {
	return fmt.Sprintf(messageTooShortFormat, limit, unit)
}
