// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"context"
	"errors"
	"fmt"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

// ErrSubscriptionClosed is returned by Consumer.Run when the subscriber
// closes its message channel before the context is done.
var ErrSubscriptionClosed = errors.New("subscription closed")

// PlannedHandler processes one decoded planned event.
type PlannedHandler func(ctx context.Context, ev *PlannedEvent) error

// Consumer delivers planned events from a Watermill subscriber to a handler.
// Malformed payloads and handler failures are logged and acked: planned
// events are notifications, and redelivering them would only repeat the
// failure.
type Consumer struct {
	subscriber message.Subscriber
	topic      string
	handle     PlannedHandler
	logger     zerolog.Logger
}

// NewConsumer creates a consumer of topic on sub.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConsumer(sub message.Subscriber, topic string, handle PlannedHandler, logger zerolog.Logger) *Consumer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Consumer{
		subscriber: sub,
		topic:      topic,
		handle:     handle,
		logger:     logger.With().Str("component", "events-consumer").Str("topic", topic).Logger(),
	}
}

// NewSubscriber connects a core NATS subscriber for cfg. The gochannel
// driver needs none: use Publisher.Subscriber instead.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSubscriber(cfg Config, logger zerolog.Logger) (message.Subscriber, error) {
	if cfg.Driver != DriverNATS {
		return nil, fmt.Errorf("driver %q has no standalone subscriber", cfg.Driver)
	}
	if cfg.NATSURL == "" {
		return nil, errors.New("nats driver requires a NATS URL")
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL: cfg.NATSURL,
		NatsOptions: []natsgo.Option{
			natsgo.Name("wayfarer-events-consumer"),
			natsgo.RetryOnFailedConnect(true),
			natsgo.MaxReconnects(cfg.MaxReconnects),
			natsgo.ReconnectWait(cfg.ReconnectWait),
		},
		SubscribersCount: 1,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logging.NewWatermillLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create NATS subscriber: %w", err)
	}
	return sub, nil
}

// Run subscribes and processes messages until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}
	c.logger.Info().Msg("Consuming planned events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return ErrSubscriptionClosed
			}
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	ev, err := UnmarshalPlannedEvent(msg.Payload)
	if err != nil {
		metrics.RecordEventConsumed(c.topic, "malformed")
		c.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed planned event")
		return
	}

	if err := c.handle(ctx, ev); err != nil {
		metrics.RecordEventConsumed(c.topic, "failure")
		c.logger.Error().Err(err).Str("event_id", ev.EventID).Msg("Planned event handler failed")
		return
	}
	metrics.RecordEventConsumed(c.topic, "success")
}

// LogPlanned returns a handler that writes one audit line per planned
// itinerary.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func LogPlanned(logger zerolog.Logger) PlannedHandler {
	logger = logger.With().Str("component", "plan-audit").Logger()
	return func(_ context.Context, ev *PlannedEvent) error {
		logger.Info().
			Str("event_id", ev.EventID).
			Str("user_id", ev.UserID).
			Str("country", ev.Country).
			Str("location", ev.Location).
			Str("fallback_level", ev.FallbackLevel).
			Bool("low_density", ev.LowDensity).
			Int("slots", len(ev.Slots)).
			Int("capacity", ev.Capacity).
			Time("planned_at", ev.PlannedAt).
			Msg("Itinerary planned")
		return nil
	}
}
