// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"context"
	"io"
	"testing"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/logging"
)

func startNATS(t *testing.T) string {
	t.Helper()
	ns, err := server.NewServer(&server.Options{
		Host:   "127.0.0.1",
		Port:   -1,
		NoLog:  true,
		NoSigs: true,
	})
	if err != nil {
		t.Fatalf("create NATS server: %v", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("NATS server not ready")
	}
	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})
	return ns.ClientURL()
}

func TestPublisher_NATS(t *testing.T) {
	t.Parallel()

	url := startNATS(t)
	logger := zerolog.New(io.Discard)

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              url,
		SubscribersCount: 1,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logging.NewWatermillLogger(logger))
	if err != nil {
		t.Fatalf("NewSubscriber() error = %v", err)
	}
	t.Cleanup(func() { _ = sub.Close() })

	cfg := DefaultConfig()
	cfg.Driver = DriverNATS
	cfg.NATSURL = url
	pub, err := NewPublisher(cfg, logger)
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })
	if pub.Subscriber() != nil {
		t.Error("Subscriber() should be nil for the nats driver")
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	msgs, err := sub.Subscribe(ctx, pub.Topic())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := pub.PublishPlanned(context.Background(), "u9", testPlan()); err != nil {
		t.Fatalf("PublishPlanned() error = %v", err)
	}

	msg := receive(t, msgs)
	ev, err := UnmarshalPlannedEvent(msg.Payload)
	if err != nil {
		t.Fatalf("UnmarshalPlannedEvent() error = %v", err)
	}
	if ev.UserID != "u9" || ev.Country != "Portugal" {
		t.Errorf("event = %+v", ev)
	}
	if got := msg.Metadata.Get("event_type"); got != EventTypePlanned {
		t.Errorf("event_type metadata = %q, want %q", got, EventTypePlanned)
	}
}
