// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/planner"
)

func testPlan() *planner.Plan {
	poi := func(id, category string, score float64) planner.POI {
		return planner.POI{
			ID: id, Name: id, Category: category, Location: "Lisbon", Country: "Portugal",
			Budget: planner.BudgetLow, DurationHours: 2, Rating: 4, Score: score,
		}
	}
	pois := []planner.POI{poi("p1", "museum", 0.9), poi("p2", "park", 0.8)}
	return &planner.Plan{
		Selection: planner.Selection{Country: "Portugal", POIs: pois, Level: planner.LevelPreferred},
		Location:  "Lisbon",
		Itinerary: planner.Itinerary{
			TripDays:    1,
			SlotsPerDay: 2,
			Slots: []planner.Slot{
				{Day: 1, TimeOfDay: "AM", POI: pois[0]},
				{Day: 1, TimeOfDay: "PM", POI: pois[1]},
			},
		},
	}
}

func receive(t *testing.T, msgs <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-msgs:
		msg.Ack()
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestNewPlannedEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.FixedZone("WEST", 3600))
	ev := NewPlannedEvent("u1", testPlan(), now)

	if ev.EventID == "" || ev.EventType != EventTypePlanned {
		t.Errorf("identity = (%q, %q)", ev.EventID, ev.EventType)
	}
	if ev.FallbackLevel != "preferred" || ev.Location != "Lisbon" || ev.Capacity != 2 {
		t.Errorf("event = %+v", ev)
	}
	if len(ev.Slots) != 2 || ev.Slots[1].POIID != "p2" || ev.Slots[1].TimeOfDay != "PM" {
		t.Errorf("Slots = %+v", ev.Slots)
	}
	if ev.PlannedAt.Location() != time.UTC {
		t.Errorf("PlannedAt zone = %v, want UTC", ev.PlannedAt.Location())
	}

	data, err := ev.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	decoded, err := UnmarshalPlannedEvent(data)
	if err != nil {
		t.Fatalf("UnmarshalPlannedEvent() error = %v", err)
	}
	if decoded.EventID != ev.EventID || len(decoded.POIIDs) != 2 || !decoded.PlannedAt.Equal(ev.PlannedAt) {
		t.Errorf("decoded = %+v", decoded)
	}

	if _, err := UnmarshalPlannedEvent([]byte(`{"event_type":"other"}`)); err == nil {
		t.Error("UnmarshalPlannedEvent(other type) error = nil, want error")
	}
}

func TestPublisher_GoChannel(t *testing.T) {
	t.Parallel()

	pub, err := NewPublisher(DefaultConfig(), zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	msgs, err := pub.Subscriber().Subscribe(ctx, pub.Topic())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	reqCtx := logging.ContextWithRequestID(context.Background(), "req-1")
	if err := pub.PublishPlanned(reqCtx, "u1", testPlan()); err != nil {
		t.Fatalf("PublishPlanned() error = %v", err)
	}

	msg := receive(t, msgs)
	if got := msg.Metadata.Get("request_id"); got != "req-1" {
		t.Errorf("request_id metadata = %q, want req-1", got)
	}
	ev, err := UnmarshalPlannedEvent(msg.Payload)
	if err != nil {
		t.Fatalf("UnmarshalPlannedEvent() error = %v", err)
	}
	if ev.UserID != "u1" || ev.EventID != msg.UUID {
		t.Errorf("event = %+v, message UUID %s", ev, msg.UUID)
	}
}

func TestPublisher_Closed(t *testing.T) {
	t.Parallel()

	pub, err := NewPublisher(DefaultConfig(), zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := pub.PublishPlanned(context.Background(), "u1", testPlan()); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("PublishPlanned() after Close error = %v, want ErrPublisherClosed", err)
	}
}

func TestPublisher_RateLimited(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RatePerSecond = 0.001
	cfg.Burst = 1
	pub, err := NewPublisher(cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := pub.PublishPlanned(ctx, "u1", testPlan()); err != nil {
		t.Fatalf("first PublishPlanned() error = %v", err)
	}
	if err := pub.PublishPlanned(ctx, "u1", testPlan()); err == nil {
		t.Error("second PublishPlanned() within the burst window succeeded, want rate limit error")
	}
}

func TestNewPublisher_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown driver", Config{Driver: "kafka"}},
		{"nats without url", Config{Driver: DriverNATS}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewPublisher(tt.cfg, zerolog.New(io.Discard)); err == nil {
				t.Error("NewPublisher() error = nil, want error")
			}
		})
	}
}

// lockedBuffer serializes writes from watermill goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewPublisher_LogsComponentOnce(t *testing.T) {
	t.Parallel()

	var out lockedBuffer
	pub, err := NewPublisher(DefaultConfig(), zerolog.New(&out))
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	logged := strings.TrimSpace(out.String())
	if !strings.Contains(logged, "Event publisher ready") {
		t.Fatalf("missing startup line: %s", logged)
	}
	for _, line := range strings.Split(logged, "\n") {
		if n := strings.Count(line, `"component":`); n != 1 {
			t.Errorf("component field appears %d times, want 1: %s", n, line)
		}
	}
}
