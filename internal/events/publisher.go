// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/planner"
)

// Supported drivers.
const (
	DriverGoChannel = "gochannel"
	DriverNATS      = "nats"
)

// DefaultTopic is the topic planned events are published to.
const DefaultTopic = EventTypePlanned

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// Config configures the event publisher.
type Config struct {
	Driver  string
	NATSURL string
	Topic   string

	// RatePerSecond caps publishes per second; zero disables throttling.
	RatePerSecond float64
	Burst         int

	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConfig returns an in-process gochannel configuration.
func DefaultConfig() Config {
	return Config{
		Driver:        DriverGoChannel,
		Topic:         DefaultTopic,
		RatePerSecond: 100,
		Burst:         20,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Publisher publishes planned events through Watermill.
type Publisher struct {
	publisher message.Publisher
	// subscriber is set for the gochannel driver, where publisher and
	// subscriber share one in-process bus.
	subscriber message.Subscriber
	topic      string
	limiter    *rate.Limiter
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ planner.PlanPublisher = (*Publisher)(nil)

// NewPublisher builds a publisher for cfg.Driver.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisher(cfg Config, logger zerolog.Logger) (*Publisher, error) {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	logger = logger.With().Str("component", "events").Str("driver", cfg.Driver).Logger()
	wmLogger := logging.NewWatermillLogger(logger)

	switch cfg.Driver {
	case DriverGoChannel, "":
		bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		p := newPublisher(bus, cfg, logger)
		p.subscriber = bus
		return p, nil

	case DriverNATS:
		pub, err := newNATSPublisher(cfg, wmLogger)
		if err != nil {
			return nil, err
		}
		return newPublisher(pub, cfg, logger), nil

	default:
		return nil, fmt.Errorf("unknown event driver %q", cfg.Driver)
	}
}

// NewPublisherWith wraps an existing Watermill publisher.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisherWith(pub message.Publisher, cfg Config, logger zerolog.Logger) *Publisher {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	return newPublisher(pub, cfg, logger.With().Str("component", "events").Logger())
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newPublisher(pub message.Publisher, cfg Config, logger zerolog.Logger) *Publisher {
	p := &Publisher{
		publisher: pub,
		topic:     cfg.Topic,
		logger:    logger,
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	p.logger.Info().Str("topic", p.topic).Msg("Event publisher ready")
	return p
}

// newNATSPublisher connects a core NATS publisher. JetStream is not used:
// planned events are notifications, not a durable log.
func newNATSPublisher(cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	if cfg.NATSURL == "" {
		return nil, errors.New("nats driver requires a NATS URL")
	}
	natsOpts := []natsgo.Option{
		natsgo.Name("wayfarer-events"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.NATSURL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}
	return pub, nil
}

// Topic returns the topic events are published to.
func (p *Publisher) Topic() string { return p.topic }

// Subscriber returns the in-process subscriber for the gochannel driver,
// or nil for other drivers.
func (p *Publisher) Subscriber() message.Subscriber { return p.subscriber }

// PublishPlanned publishes a PlannedEvent for plan. It blocks while the
// rate limiter is exhausted, up to ctx's deadline.
func (p *Publisher) PublishPlanned(ctx context.Context, userID string, plan *planner.Plan) error {
	ev := NewPlannedEvent(userID, plan, time.Now())
	data, err := ev.Marshal()
	if err != nil {
		return err
	}

	msg := message.NewMessage(ev.EventID, data)
	msg.Metadata.Set("event_type", ev.EventType)
	msg.Metadata.Set("user_id", userID)
	msg.Metadata.Set("country", ev.Country)
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		msg.Metadata.Set("request_id", requestID)
	}

	err = p.Publish(ctx, msg)
	metrics.RecordEventPublished(p.topic, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.EventID, err)
	}
	p.logger.Debug().Str("event_id", ev.EventID).Str("user_id", userID).Msg("Planned event published")
	return nil
}

// Publish sends msg to the configured topic.
func (p *Publisher) Publish(ctx context.Context, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topic, msg)
}

// Close shuts the publisher down. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
