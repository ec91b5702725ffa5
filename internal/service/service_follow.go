// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/events"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/store"
	"github.com/MKhiriev/go-social-graph/internal/validators"
	"github.com/MKhiriev/go-social-graph/models"
)

// FieldAfter names the pagination cursor in validation errors.
const FieldAfter = "after"

// followService maintains the follow graph. Edge and counter consistency
// is the store's job; this layer maps errors and publishes events.
type followService struct {
	followRepository store.FollowRepository
	publisher        events.Publisher
	logger           *logger.Logger
}

func NewFollowService(storages *store.Storages, publisher events.Publisher, logger *logger.Logger) FollowService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}

	return &followService{
		followRepository: storages.FollowRepository,
		publisher:        publisher,
		logger:           logger,
	}
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	return s.followRepository.FollowExists(ctx, followerID, followedUserID)
}

// Follow creates followerID → followedUserID. Following an already followed
// user succeeds without changes.
func (s *followService) Follow(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	log := logger.FromContext(ctx)

	created, err := s.followRepository.CreateFollow(ctx, models.Follow{
		FollowerID:     followerID,
		FollowedUserID: followedUserID,
	})
	if err != nil {
		return false, followError(err)
	}

	if created {
		log.Info().Str("func", "*followService.Follow").
			Int64("follower_id", followerID).
			Int64("followed_user_id", followedUserID).
			Msg("follow created")
		s.publish(ctx, s.publisher.PublishFollowed, followerID, followedUserID)
	}

	return created, nil
}

// Unfollow removes followerID → followedUserID. Removing a missing edge
// succeeds without changes.
func (s *followService) Unfollow(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	log := logger.FromContext(ctx)

	deleted, err := s.followRepository.DeleteFollow(ctx, models.Follow{
		FollowerID:     followerID,
		FollowedUserID: followedUserID,
	})
	if err != nil {
		return false, followError(err)
	}

	if deleted {
		log.Info().Str("func", "*followService.Unfollow").
			Int64("follower_id", followerID).
			Int64("followed_user_id", followedUserID).
			Msg("follow removed")
		s.publish(ctx, s.publisher.PublishUnfollowed, followerID, followedUserID)
	}

	return deleted, nil
}

// publish sends an event after the change has committed. A failure is
// logged and otherwise ignored.
func (s *followService) publish(ctx context.Context, send func(context.Context, models.FollowEvent) error, followerID, followedUserID int64) {
	event := models.FollowEvent{
		FollowerID:     followerID,
		FollowedUserID: followedUserID,
		OccurredAt:     time.Now().UTC(),
	}

	if err := send(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*followService.publish").Msg("follow event was not published")
	}
}

func (s *followService) Followers(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	result, err := s.followRepository.ListFollowers(ctx, userID, page)
	if err != nil {
		return models.UserPage{}, pageError(err)
	}

	return result, nil
}

func (s *followService) Followings(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	result, err := s.followRepository.ListFollowings(ctx, userID, page)
	if err != nil {
		return models.UserPage{}, pageError(err)
	}

	return result, nil
}

func (s *followService) Counts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	counts, err := s.followRepository.GetCounts(ctx, userID)
	if err != nil {
		return models.FollowCounts{}, notFound(err)
	}

	return counts, nil
}

// RecountCounters repairs counters that drifted from the edge table and
// returns how many users were corrected.
func (s *followService) RecountCounters(ctx context.Context) (int64, error) {
	fixed, err := s.followRepository.RecountCounters(ctx)
	if err != nil {
		return 0, fmt.Errorf("error recounting follow counters: %w", err)
	}

	return fixed, nil
}

func followError(err error) error {
	if errors.Is(err, store.ErrSelfFollow) {
		return fmt.Errorf("%w: %w", ErrSelfFollow, err)
	}
	return notFound(err)
}

func pageError(err error) error {
	if errors.Is(err, store.ErrInvalidCursor) {
		return validators.NewValidationError(FieldAfter, validators.MessageInvalid)
	}
	return notFound(err)
}
