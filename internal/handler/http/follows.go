// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/MKhiriev/go-social-graph/models"
)

func (h *Handler) followers(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.services.FollowService.Followers)
}

func (h *Handler) followings(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.services.FollowService.Followings)
}

func (h *Handler) listEdges(w http.ResponseWriter, r *http.Request, list func(context.Context, int64, models.PageRequest) (models.UserPage, error)) {
	userID, err := pathID(r, paramUserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := pageRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := list(r.Context(), userID, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if result.Edges == nil {
		result.Edges = []models.UserEdge{}
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) isFollowing(w http.ResponseWriter, r *http.Request) {
	followerID, err := pathID(r, paramUserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	targetID, err := pathID(r, paramTargetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	following, err := h.services.FollowService.IsFollowing(r.Context(), followerID, targetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.FollowStatus{
		FollowerID:     followerID,
		FollowedUserID: targetID,
		Following:      following,
	}, http.StatusOK)
}

// follow makes the caller follow {id}. A new edge answers 201, an existing
// one 200.
func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	callerID, targetID, ok := h.edgeParams(w, r)
	if !ok {
		return
	}

	created, err := h.services.FollowService.Follow(r.Context(), callerID, targetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, models.FollowStatus{
		FollowerID:     callerID,
		FollowedUserID: targetID,
		Following:      true,
	}, status)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	callerID, targetID, ok := h.edgeParams(w, r)
	if !ok {
		return
	}

	if _, err := h.services.FollowService.Unfollow(r.Context(), callerID, targetID); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.FollowStatus{
		FollowerID:     callerID,
		FollowedUserID: targetID,
		Following:      false,
	}, http.StatusOK)
}

func (h *Handler) edgeParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	callerID, err := callerIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return 0, 0, false
	}

	targetID, err := pathID(r, paramUserID)
	if err != nil {
		h.writeError(w, r, err)
		return 0, 0, false
	}

	return callerID, targetID, true
}
