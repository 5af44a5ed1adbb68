// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package cache provides a thread-safe in-memory TTL cache and caching
decorators for the planner's providers.

# Overview

Cache[V] stores values with an expiry. Expired entries are removed lazily
on Get and swept by a background goroutine that runs until Close. Hits
and misses are exported as Prometheus counters labelled with the cache
name.

CachedHistory and CachedScores sit in front of planner.HistoryProvider
and planner.ScoreProvider. Both hand out copies so callers cannot alter
cached values. Recording a new interaction for a user must be followed by
Invalidate for that user.

# Usage Example

	history := cache.NewCachedHistory(store, 5*time.Minute)
	defer history.Close()

	profile, err := history.LikeProfile(ctx, "user-42")
	if err != nil {
	    return err
	}

	// After recording a like:
	history.Invalidate("user-42")

# Thread Safety

All types in this package are safe for concurrent use.
*/
package cache
