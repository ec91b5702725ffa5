// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events publishes follow graph changes to NATS.
//
// Publishing is fire-and-forget: an edge change is committed before its
// event is sent, and a failed publish never undoes it.
package events

//go:generate mockgen -source=events.go -destination=../mock/events_mock.go -package=mock

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-social-graph/models"
)

const (
	// SubjectFollowed carries a [models.FollowEvent] for every new edge.
	SubjectFollowed = "user.followed"

	// SubjectUnfollowed carries a [models.FollowEvent] for every removed edge.
	SubjectUnfollowed = "user.unfollowed"
)

var (
	ErrMarshallingEvent = errors.New("error marshalling event")
	ErrPublishingEvent  = errors.New("error publishing event")
	ErrConnecting       = errors.New("error connecting to NATS")
)

// Publisher sends follow graph events.
type Publisher interface {
	PublishFollowed(ctx context.Context, event models.FollowEvent) error
	PublishUnfollowed(ctx context.Context, event models.FollowEvent) error
	Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event. It is used when
// no NATS URL is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishFollowed(context.Context, models.FollowEvent) error   { return nil }
func (nopPublisher) PublishUnfollowed(context.Context, models.FollowEvent) error { return nil }
func (nopPublisher) Close()                                                      {}
