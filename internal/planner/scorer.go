// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package planner

import "strings"

const (
	// DefaultLikeBoost is added to the score of POIs the user already liked.
	DefaultLikeBoost = 0.5

	// DefaultDurationHours is assumed for catalog entries without a duration.
	DefaultDurationHours = 2.0
)

// Preferences are the user-level filters applied before scoring.
// Empty fields do not filter.
type Preferences struct {
	Climate   string
	Budget    BudgetTier
	Interests []string
}

// ScoredPool is the output of PreferenceScorer.Score.
type ScoredPool struct {
	POIs []POI
	// Relaxed is set when no POI matched the climate preference and the
	// climate filter was dropped.
	Relaxed bool
}

// PreferenceScorer is the rule-based baseline scorer: POIs matching the
// user's climate, budget and interests are scored rating/5, plus LikeBoost
// for POIs the user has liked before.
type PreferenceScorer struct {
	LikeBoost float64
}

// Score filters and scores catalog for one user. liked holds the IDs of
// POIs the user liked. The catalog is not modified; the returned POIs are
// ordered by score descending, then ID ascending.
func (s PreferenceScorer) Score(catalog []POI, prefs Preferences, liked map[string]bool) ScoredPool {
	pool := ScoredPool{POIs: matchPreferences(catalog, prefs, true)}
	if len(pool.POIs) == 0 && prefs.Climate != "" {
		pool.POIs = matchPreferences(catalog, prefs, false)
		pool.Relaxed = true
	}

	for i := range pool.POIs {
		score := pool.POIs[i].Rating / MaxRating
		if liked[pool.POIs[i].ID] {
			score += s.LikeBoost
		}
		pool.POIs[i].Score = score
	}
	byScore(pool.POIs)
	return pool
}

func matchPreferences(catalog []POI, prefs Preferences, withClimate bool) []POI {
	interests := make(map[string]struct{}, len(prefs.Interests))
	for _, interest := range prefs.Interests {
		if interest = strings.ToLower(strings.TrimSpace(interest)); interest != "" {
			interests[interest] = struct{}{}
		}
	}

	out := make([]POI, 0, len(catalog))
	for i := range catalog {
		p := catalog[i]
		if withClimate && prefs.Climate != "" && !strings.EqualFold(p.Climate, prefs.Climate) {
			continue
		}
		if prefs.Budget.Valid() && p.Budget != prefs.Budget {
			continue
		}
		if len(interests) > 0 {
			if _, ok := interests[strings.ToLower(p.Category)]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// NormalizePOI fills the attributes upstream data commonly omits: a missing
// duration becomes defaultDuration and, when hasScore is false, the score
// falls back to the rating. The argument is not modified.
func NormalizePOI(p POI, hasScore bool, defaultDuration float64) POI {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDurationHours
	}
	if p.DurationHours <= 0 {
		p.DurationHours = defaultDuration
	}
	if !hasScore {
		p.Score = p.Rating
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Location = strings.TrimSpace(p.Location)
	p.Country = strings.TrimSpace(p.Country)
	return p
}
