// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package events publishes domain events for completed plans.

Every successful planner.Service.Plan call produces a PlannedEvent on the
"itinerary.planned" topic. Two Watermill drivers are supported:

  - gochannel: an in-process bus, the default. Subscriber exposes the
    bus for in-process consumers.
  - nats: core NATS through watermill-nats. Events are fire-and-forget
    notifications, so JetStream is not used.

Publishing is throttled by a token bucket (golang.org/x/time/rate).
Publish failures are returned to the caller; the planner logs them
without failing the plan.
*/
package events
