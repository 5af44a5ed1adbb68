// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package resilience

import (
	"context"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// ScoreProvider guards a planner.ScoreProvider with a circuit breaker.
type ScoreProvider struct {
	next    planner.ScoreProvider
	breaker *Breaker[[]planner.POI]
}

var _ planner.ScoreProvider = (*ScoreProvider)(nil)

// NewScoreProvider wraps next with a breaker named "score-provider".
//
//nolint:gocritic // Config is a small value type
func NewScoreProvider(next planner.ScoreProvider, cfg Config) *ScoreProvider {
	return &ScoreProvider{next: next, breaker: NewBreaker[[]planner.POI]("score-provider", cfg)}
}

// ScorePOIs calls the wrapped provider unless the breaker is open.
func (p *ScoreProvider) ScorePOIs(ctx context.Context, userID, poolID string) ([]planner.POI, error) {
	return p.breaker.Execute(func() ([]planner.POI, error) {
		return p.next.ScorePOIs(ctx, userID, poolID)
	})
}

// State reports the breaker state.
func (p *ScoreProvider) State() string { return p.breaker.State() }

// HistoryProvider guards a planner.HistoryProvider with a circuit breaker.
type HistoryProvider struct {
	next    planner.HistoryProvider
	breaker *Breaker[planner.LikeProfile]
}

var _ planner.HistoryProvider = (*HistoryProvider)(nil)

// NewHistoryProvider wraps next with a breaker named "history-provider".
//
//nolint:gocritic // Config is a small value type
func NewHistoryProvider(next planner.HistoryProvider, cfg Config) *HistoryProvider {
	return &HistoryProvider{next: next, breaker: NewBreaker[planner.LikeProfile]("history-provider", cfg)}
}

// LikeProfile calls the wrapped provider unless the breaker is open.
func (p *HistoryProvider) LikeProfile(ctx context.Context, userID string) (planner.LikeProfile, error) {
	return p.breaker.Execute(func() (planner.LikeProfile, error) {
		return p.next.LikeProfile(ctx, userID)
	})
}

// State reports the breaker state.
func (p *HistoryProvider) State() string { return p.breaker.State() }
