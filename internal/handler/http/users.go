// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/MKhiriev/go-social-graph/models"
)

// signup registers an account and answers 201 with the user and a fresh
// bearer token in the Authorization header.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.setBearerToken(w, r, user); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("id", user.UserID).Msg("user signed up")
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, paramUserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, paramUserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var upd models.UserUpdate
	if err = utils.ReadJSON(r, &upd); err != nil {
		h.writeError(w, r, err)
		return
	}
	upd.UserID = userID

	user, err := h.services.UserService.UpdateUser(r.Context(), upd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// deleteUser removes the caller's account together with its edges and
// clears any remember cookies.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, paramUserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteUser(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.clearRememberCookies(w)
	logger.FromRequest(r).Info().Int64("id", userID).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}
