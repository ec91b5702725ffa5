// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Follow is a directed edge meaning "FollowerID follows FollowedUserID".
// Edges are created and destroyed, never mutated in place.
type Follow struct {
	FollowerID     int64     `json:"follower_id"`
	FollowedUserID int64     `json:"followed_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Follow model.
func (f Follow) TableName() string {
	return "follows"
}

// FollowCounts holds the denormalized counters of a single user.
type FollowCounts struct {
	UserID          int64 `json:"user_id"`
	FollowersCount  int64 `json:"followers_count"`
	FollowingsCount int64 `json:"followings_count"`
}

// FollowStatus answers "does the actor follow the candidate".
type FollowStatus struct {
	FollowerID     int64 `json:"follower_id"`
	FollowedUserID int64 `json:"followed_user_id"`
	Following      bool  `json:"following"`
}

// FollowEvent is published after an edge has been created or removed.
type FollowEvent struct {
	FollowerID     int64     `json:"follower_id"`
	FollowedUserID int64     `json:"followed_user_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const (
	// DefaultPageSize is used when a page request does not specify First.
	DefaultPageSize = 20

	// MaxPageSize caps First for a single page.
	MaxPageSize = 100
)

// PageRequest asks for the First users after the opaque After cursor.
type PageRequest struct {
	First int    `json:"first"`
	After string `json:"after,omitempty"`
}

// Limit returns First clamped to (0, MaxPageSize], falling back to
// DefaultPageSize.
func (p PageRequest) Limit() int {
	switch {
	case p.First <= 0:
		return DefaultPageSize
	case p.First > MaxPageSize:
		return MaxPageSize
	default:
		return p.First
	}
}

// UserEdge is a user reached through a follow edge.
type UserEdge struct {
	Cursor     string    `json:"cursor"`
	User       User      `json:"user"`
	FollowedAt time.Time `json:"followed_at"`
}

// PageInfo describes the position of a page inside the full list.
type PageInfo struct {
	EndCursor   string `json:"end_cursor,omitempty"`
	HasNextPage bool   `json:"has_next_page"`
}

// UserPage is one page of followers or followings, newest edge first.
type UserPage struct {
	Edges      []UserEdge `json:"edges"`
	PageInfo   PageInfo   `json:"page_info"`
	TotalCount int64      `json:"total_count"`
}
