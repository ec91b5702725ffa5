// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/service"
	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/MKhiriev/go-social-graph/models"
)

const (
	cookieUserID        = "user_id"
	cookieRememberToken = "remember_token"
)

// login authenticates by e-mail and password. With remember_me set a new
// remember token is issued into cookies; without it any previous one is
// forgotten.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if req.RememberMe {
		rememberToken, err := h.services.AuthService.Remember(ctx, user.UserID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.setRememberCookies(w, user.UserID, rememberToken)
	} else {
		if err = h.services.AuthService.Forget(ctx, user.UserID); err != nil {
			h.writeError(w, r, err)
			return
		}
		h.clearRememberCookies(w)
	}

	if err = h.setBearerToken(w, r, user); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("id", user.UserID).Bool("remember_me", req.RememberMe).Msg("user logged in")
	utils.WriteJSON(w, user, http.StatusOK)
}

// restoreSession trades the remember cookies for a new bearer token.
func (h *Handler) restoreSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, rememberToken, err := rememberCookies(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	authenticated, err := h.services.AuthService.IsAuthenticated(ctx, userID, rememberToken)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !authenticated {
		h.clearRememberCookies(w)
		h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.setBearerToken(w, r, user); err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("id", userID).Msg("session restored")
	utils.WriteJSON(w, user, http.StatusOK)
}

// logout forgets the caller's remember digest and clears the cookies.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	userID, err := callerIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.AuthService.Forget(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.clearRememberCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setBearerToken(w http.ResponseWriter, r *http.Request, user models.User) error {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		return err
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	return nil
}

func (h *Handler) setRememberCookies(w http.ResponseWriter, userID int64, rememberToken string) {
	expires := time.Now().Add(h.rememberDuration)

	http.SetCookie(w, h.cookie(cookieUserID, strconv.FormatInt(userID, 10), expires))
	http.SetCookie(w, h.cookie(cookieRememberToken, rememberToken, expires))
}

func (h *Handler) clearRememberCookies(w http.ResponseWriter) {
	for _, name := range []string{cookieUserID, cookieRememberToken} {
		c := h.cookie(name, "", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (h *Handler) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func rememberCookies(r *http.Request) (int64, string, error) {
	idCookie, err := r.Cookie(cookieUserID)
	if err != nil || idCookie.Value == "" {
		return 0, "", ErrMissingRememberCookies
	}

	tokenCookie, err := r.Cookie(cookieRememberToken)
	if err != nil || tokenCookie.Value == "" {
		return 0, "", ErrMissingRememberCookies
	}

	userID, err := strconv.ParseInt(idCookie.Value, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", ErrMissingRememberCookies
	}

	return userID, tokenCookie.Value, nil
}
