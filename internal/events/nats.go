// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/models"
	"github.com/nats-io/nats.go"
)

const (
	maxReconnects = 10
	reconnectWait = 2 * time.Second
)

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

type natsPublisher struct {
	conn   conn
	logger *logger.Logger
}

// NewPublisher connects to cfg.NATSURL. An empty URL yields a no-op
// publisher.
func NewPublisher(cfg config.Events, log *logger.Logger) (Publisher, error) {
	if cfg.NATSURL == "" {
		log.Info().Str("func", "events.NewPublisher").Msg("NATS url is not set, follow events are disabled")
		return NewNopPublisher(), nil
	}

	nc, err := nats.Connect(cfg.NATSURL,
		nats.Name("go-social-graph"),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		log.Err(err).Str("func", "events.NewPublisher").Msg("error connecting to NATS")
		return nil, fmt.Errorf("%w: %w", ErrConnecting, err)
	}

	log.Info().Str("func", "events.NewPublisher").Str("url", nc.ConnectedUrl()).Msg("connected to NATS")
	return newNATSPublisher(nc, log), nil
}

func newNATSPublisher(c conn, log *logger.Logger) *natsPublisher {
	return &natsPublisher{conn: c, logger: log}
}

func (p *natsPublisher) PublishFollowed(ctx context.Context, event models.FollowEvent) error {
	return p.publish(ctx, SubjectFollowed, event)
}

func (p *natsPublisher) PublishUnfollowed(ctx context.Context, event models.FollowEvent) error {
	return p.publish(ctx, SubjectUnfollowed, event)
}

func (p *natsPublisher) publish(ctx context.Context, subject string, event models.FollowEvent) error {
	log := logger.FromContext(ctx)

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshallingEvent, err)
	}

	if err = p.conn.Publish(subject, data); err != nil {
		log.Err(err).Str("func", "*natsPublisher.publish").Str("subject", subject).Msg("error publishing event")
		return fmt.Errorf("%w: %w", ErrPublishingEvent, err)
	}

	log.Debug().
		Str("subject", subject).
		Int64("follower_id", event.FollowerID).
		Int64("followed_user_id", event.FollowedUserID).
		Msg("event published")
	return nil
}

// Close drains pending messages and closes the connection.
func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Err(err).Str("func", "*natsPublisher.Close").Msg("error draining NATS connection")
	}
}
