// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims storage space. *storage.Store implements it.
type GarbageCollector interface {
	RunGC(ctx context.Context) error
}

// StorageGCService runs value log garbage collection on a fixed interval.
// GC errors are logged and the loop continues; only cancellation ends it.
type StorageGCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewStorageGCService creates the service. A non-positive interval becomes
// one hour.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStorageGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *StorageGCService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &StorageGCService{
		gc:       gc,
		interval: interval,
		logger:   logger.With().Str("component", "storage-gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *StorageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("Storage GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("Storage GC completed")
		}
	}
}

func (s *StorageGCService) String() string {
	return "storage-gc"
}
