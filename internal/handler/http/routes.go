// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.signup)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getUser)
			r.Get("/followers", h.followers)
			r.Get("/followings", h.followings)
			r.Get("/following/{target}", h.isFollowing)

			// routes with authorization
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Post("/follow", h.follow)
				r.Delete("/follow", h.unfollow)

				r.With(h.requireSelf).Patch("/", h.updateUser)
				r.With(h.requireSelf).Delete("/", h.deleteUser)
			})
		})
	})

	router.Route("/api/sessions", func(r chi.Router) {
		r.With(h.withSessionRateLimit).Post("/", h.login)
		r.With(h.withSessionRateLimit).Post("/restore", h.restoreSession)
		r.With(h.auth).Delete("/", h.logout)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, errRouteNotFound)
	})

	return router
}
