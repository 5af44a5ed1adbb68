// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package cache

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// Cache names used as metrics labels.
const (
	LikeProfilesCache = "like_profiles"
	ScoredPoolsCache  = "scored_pools"
)

// CachedHistory caches LikeProfiles per user in front of a
// planner.HistoryProvider.
type CachedHistory struct {
	next  planner.HistoryProvider
	cache *Cache[planner.LikeProfile]
}

var _ planner.HistoryProvider = (*CachedHistory)(nil)

// NewCachedHistory wraps next with a cache of the given TTL.
func NewCachedHistory(next planner.HistoryProvider, ttl time.Duration) *CachedHistory {
	return &CachedHistory{next: next, cache: New[planner.LikeProfile](LikeProfilesCache, ttl, 0)}
}

// LikeProfile returns the cached profile for userID, loading it on a miss.
// Errors are not cached. Callers receive a copy.
func (h *CachedHistory) LikeProfile(ctx context.Context, userID string) (planner.LikeProfile, error) {
	if profile, ok := h.cache.Get(userID); ok {
		return maps.Clone(profile), nil
	}
	profile, err := h.next.LikeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = planner.LikeProfile{}
	}
	h.cache.Set(userID, maps.Clone(profile))
	return profile, nil
}

// Invalidate drops the cached profile of userID.
func (h *CachedHistory) Invalidate(userID string) {
	h.cache.Delete(userID)
}

// Stats returns the underlying cache statistics.
func (h *CachedHistory) Stats() Stats { return h.cache.GetStats() }

// Close stops the cache's cleanup goroutine.
func (h *CachedHistory) Close() { h.cache.Close() }

// CachedScores caches scored pools per user and pool in front of a
// planner.ScoreProvider.
type CachedScores struct {
	next  planner.ScoreProvider
	cache *Cache[[]planner.POI]
}

var _ planner.ScoreProvider = (*CachedScores)(nil)

// NewCachedScores wraps next with a cache of the given TTL.
func NewCachedScores(next planner.ScoreProvider, ttl time.Duration) *CachedScores {
	return &CachedScores{next: next, cache: New[[]planner.POI](ScoredPoolsCache, ttl, 0)}
}

func scoresKey(userID, poolID string) string {
	return userPrefix(userID) + poolID
}

func userPrefix(userID string) string {
	return userID + "\x00"
}

// ScorePOIs returns the cached scored pool, loading it on a miss. Errors
// are not cached. Callers receive a copy.
func (s *CachedScores) ScorePOIs(ctx context.Context, userID, poolID string) ([]planner.POI, error) {
	key := scoresKey(userID, poolID)
	if pois, ok := s.cache.Get(key); ok {
		return slices.Clone(pois), nil
	}
	pois, err := s.next.ScorePOIs(ctx, userID, poolID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, slices.Clone(pois))
	return pois, nil
}

// Invalidate drops every cached pool of userID.
func (s *CachedScores) Invalidate(userID string) {
	s.cache.DeletePrefix(userPrefix(userID))
}

// InvalidateAll drops every cached pool, e.g. after a catalog change.
func (s *CachedScores) InvalidateAll() {
	s.cache.Clear()
}

// Stats returns the underlying cache statistics.
func (s *CachedScores) Stats() Stats { return s.cache.GetStats() }

// Close stops the cache's cleanup goroutine.
func (s *CachedScores) Close() { s.cache.Close() }
