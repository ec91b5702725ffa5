// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-social-graph/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderUser(t *testing.T) {
	out := RenderUser(models.User{
		UserID:          42,
		Name:            "alice",
		Email:           "alice@example.com",
		FollowersCount:  3,
		FollowingsCount: 1,
		CreatedAt:       time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	})

	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "followers")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "joined")
}

func TestRenderUser_WithoutEmail(t *testing.T) {
	out := RenderUser(models.User{UserID: 1, Name: "bob"})

	assert.NotContains(t, out, "email")
	assert.NotContains(t, out, "joined")
}

func TestRenderUserPage(t *testing.T) {
	page := models.UserPage{
		Edges: []models.UserEdge{
			{Cursor: "c1", User: models.User{UserID: 2, Name: "bob"}},
			{Cursor: "c2", User: models.User{UserID: 3, Name: "carol"}},
		},
		PageInfo:   models.PageInfo{EndCursor: "c2", HasNextPage: true},
		TotalCount: 5,
	}

	out := RenderUserPage("followers", page)

	assert.Contains(t, out, "followers (5)")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "carol")
	assert.Contains(t, out, "--after c2")
}

func TestRenderUserPage_Empty(t *testing.T) {
	out := RenderUserPage("followings", models.UserPage{})

	assert.Contains(t, out, "followings (0)")
	assert.Contains(t, out, "-")
	assert.NotContains(t, out, "--after")
}
