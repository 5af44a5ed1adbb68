// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// EventTypePlanned identifies PlannedEvent payloads.
const EventTypePlanned = "itinerary.planned"

// PlannedSlot is the wire form of one itinerary slot.
type PlannedSlot struct {
	Day       int    `json:"day"`
	TimeOfDay string `json:"time_of_day"`
	POIID     string `json:"poi_id"`
	Category  string `json:"category"`
}

// PlannedEvent announces a successfully built plan.
type PlannedEvent struct {
	EventID       string        `json:"event_id"`
	EventType     string        `json:"event_type"`
	UserID        string        `json:"user_id"`
	Country       string        `json:"country"`
	Location      string        `json:"location"`
	FallbackLevel string        `json:"fallback_level"`
	LowDensity    bool          `json:"low_density"`
	POIIDs        []string      `json:"poi_ids"`
	Slots         []PlannedSlot `json:"slots"`
	Capacity      int           `json:"capacity"`
	PlannedAt     time.Time     `json:"planned_at"`
}

// NewPlannedEvent builds the event for plan with a fresh event ID.
func NewPlannedEvent(userID string, plan *planner.Plan, now time.Time) *PlannedEvent {
	ev := &PlannedEvent{
		EventID:       uuid.NewString(),
		EventType:     EventTypePlanned,
		UserID:        userID,
		Country:       plan.Selection.Country,
		Location:      plan.Location,
		FallbackLevel: string(plan.Selection.Level),
		LowDensity:    plan.Selection.LowDensity,
		POIIDs:        make([]string, len(plan.Selection.POIs)),
		Slots:         make([]PlannedSlot, len(plan.Itinerary.Slots)),
		Capacity:      plan.Itinerary.Capacity(),
		PlannedAt:     now.UTC(),
	}
	for i := range plan.Selection.POIs {
		ev.POIIDs[i] = plan.Selection.POIs[i].ID
	}
	for i, s := range plan.Itinerary.Slots {
		ev.Slots[i] = PlannedSlot{Day: s.Day, TimeOfDay: s.TimeOfDay, POIID: s.POI.ID, Category: s.POI.Category}
	}
	return ev
}

// Marshal encodes the event as JSON.
func (e *PlannedEvent) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal planned event: %w", err)
	}
	return data, nil
}

// UnmarshalPlannedEvent decodes a PlannedEvent payload.
func UnmarshalPlannedEvent(data []byte) (*PlannedEvent, error) {
	var ev PlannedEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("unmarshal planned event: %w", err)
	}
	if ev.EventType != EventTypePlanned {
		return nil, fmt.Errorf("unexpected event type %q", ev.EventType)
	}
	return &ev, nil
}
