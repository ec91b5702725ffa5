// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-social-graph/models"
	"github.com/go-chi/chi/v5"
)

const (
	paramUserID   = "id"
	paramTargetID = "target"

	queryFirst = "first"
	queryAfter = "after"
)

// pathID parses a positive int64 path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidPathParam, name, raw)
	}
	return id, nil
}

// pageRequest reads the first/after query parameters. Range checks on first
// are left to the service.
func pageRequest(r *http.Request) (models.PageRequest, error) {
	query := r.URL.Query()
	page := models.PageRequest{After: query.Get(queryAfter)}

	if raw := query.Get(queryFirst); raw != "" {
		first, err := strconv.Atoi(raw)
		if err != nil {
			return models.PageRequest{}, fmt.Errorf("%w: %s=%q", errInvalidQueryParam, queryFirst, raw)
		}
		page.First = first
	}

	return page, nil
}
