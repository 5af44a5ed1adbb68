// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// ScoreProvider scores the stored catalog for a user with the baseline
// preference scorer.
type ScoreProvider struct {
	store  *Store
	scorer planner.PreferenceScorer
}

var _ planner.ScoreProvider = (*ScoreProvider)(nil)

// NewScoreProvider returns a provider over store. likeBoost is added to
// the score of POIs the user liked.
func NewScoreProvider(store *Store, likeBoost float64) *ScoreProvider {
	return &ScoreProvider{store: store, scorer: planner.PreferenceScorer{LikeBoost: likeBoost}}
}

// ScorePOIs returns the scored POIs of poolID for userID. Users without a
// stored profile are scored without preference filters.
func (p *ScoreProvider) ScorePOIs(ctx context.Context, userID, poolID string) ([]planner.POI, error) {
	catalog, err := p.store.ListPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list pool %q: %w", poolID, err)
	}

	var prefs planner.Preferences
	user, err := p.store.GetUser(ctx, userID)
	switch {
	case err == nil:
		prefs = user.Preferences()
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}

	liked, err := p.store.LikedPOIs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load likes for %s: %w", userID, err)
	}

	pool := p.scorer.Score(catalog, prefs, liked)
	if pool.Relaxed {
		p.store.logger.Info().
			Str("user_id", userID).
			Str("climate", prefs.Climate).
			Msg("No POIs matched climate preference, relaxed filter")
	}
	return pool.POIs, nil
}
