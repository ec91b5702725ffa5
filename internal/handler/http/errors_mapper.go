// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-social-graph/internal/app"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/service"
	"github.com/MKhiriev/go-social-graph/internal/store"
	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/MKhiriev/go-social-graph/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrInvalidUserID: http.StatusBadRequest,
	service.ErrSelfFollow:       http.StatusConflict,

	service.ErrUserNotFound: http.StatusNotFound,
	store.ErrUserNotFound:   http.StatusNotFound,

	service.ErrWrongCredentials:         http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:  http.StatusUnauthorized,
	ErrEmptyAuthorizationHeader:         http.StatusUnauthorized,
	ErrMissingRememberCookies:           http.StatusUnauthorized,
	utils.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	errNoUserInContext:                  http.StatusUnauthorized,
	service.ErrForbidden:                http.StatusForbidden,

	utils.ErrInvalidJSONBody: http.StatusBadRequest,
	errInvalidPathParam:      http.StatusBadRequest,
	errInvalidQueryParam:     http.StatusBadRequest,
	errTooManyRequests:       http.StatusTooManyRequests,
	errRouteNotFound:         http.StatusNotFound,
}

// errorResponse is the JSON body of every non-2xx answer. Errors carries the
// rejected fields of a 422.
type errorResponse struct {
	Error  string                        `json:"error"`
	Errors []*validators.ValidationError `json:"errors,omitempty"`
}

// statusFromError picks the status of the first matching sentinel.
// Validation failures win over everything else since a joined error may
// also carry lower-level causes.
func statusFromError(err error) int {
	if errors.Is(err, validators.ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	body := errorResponse{Error: http.StatusText(status)}
	switch {
	case status == http.StatusUnprocessableEntity:
		body.Errors = validators.FieldErrors(err)
		body.Error = err.Error()
		log.Debug().Err(err).Int("status", status).Msg("request rejected by validation")
	case status >= http.StatusInternalServerError:
		log.Err(err).Int("status", status).Msg("request failed")
	default:
		body.Error = errorMessage(err, status)
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, body, status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}

// errorMessage returns the client-facing text for a 4xx. Credential and
// token failures share one message so that they leak nothing.
func errorMessage(err error, status int) string {
	switch status {
	case http.StatusUnauthorized:
		if errors.Is(err, service.ErrWrongCredentials) {
			return app.MsgInvalidCredentials
		}
		return http.StatusText(status)
	case http.StatusNotFound:
		if errors.Is(err, errRouteNotFound) {
			return http.StatusText(status)
		}
		return app.MsgUserNotFound
	case http.StatusConflict:
		return app.MsgSelfFollow
	case http.StatusForbidden:
		return app.MsgAccessDenied
	default:
		return err.Error()
	}
}
