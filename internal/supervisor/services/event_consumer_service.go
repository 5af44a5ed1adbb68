// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"errors"
	"fmt"
)

// EventRunner is a blocking event loop. *events.Consumer implements it.
type EventRunner interface {
	Run(ctx context.Context) error
}

// EventConsumerService supervises an event consumer. A consumer that
// stops on its own (for example after a broker disconnect closed its
// subscription) returns an error so suture restarts it.
type EventConsumerService struct {
	runner EventRunner
	name   string
}

// NewEventConsumerService wraps runner.
func NewEventConsumerService(runner EventRunner, name string) *EventConsumerService {
	if name == "" {
		name = "event-consumer"
	}
	return &EventConsumerService{runner: runner, name: name}
}

// Serve implements suture.Service.
func (s *EventConsumerService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		err = errors.New("consumer exited")
	}
	return fmt.Errorf("%s: %w", s.name, err)
}

func (s *EventConsumerService) String() string {
	return s.name
}
