// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/service"
	"github.com/MKhiriev/go-social-graph/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the authenticated user's ID
// in the request context under [utils.UserIDCtxKey].
//
// Requests without a header, with a non-Bearer scheme or with an invalid or
// expired token are rejected with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		userLog := log.With().Int64("user_id", token.UserID).Logger()
		ctx = userLog.WithContext(utils.WithUserID(ctx, token.UserID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSelf allows the request only when the authenticated caller is the
// user named by the {id} path parameter.
func (h *Handler) requireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID, err := callerIDFromRequest(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		userID, err := pathID(r, paramUserID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		if callerID != userID {
			h.writeError(w, r, service.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func callerIDFromRequest(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, errNoUserInContext
	}
	return userID, nil
}
