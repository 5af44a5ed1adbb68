// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package planner

import (
	"fmt"
	"math"
	"sort"
)

// Select picks the region whose POIs should be surfaced for a user.
//
// Tiers are tried in order and the first satisfied tier wins:
//
//  1. preferred: the user's most-liked country, if it holds at least topN POIs.
//  2. best_average: countries ranked by mean score (descending, then name);
//     the first one holding at least topN POIs.
//  3. global: the overall top min(topN, len(pois)) POIs, flagged LowDensity.
//
// Within a tier POIs are ordered by score descending, then ID ascending.
// The input slice is never modified.
func Select(pois []POI, profile LikeProfile, topN int) (Selection, error) {
	if topN <= 0 {
		return Selection{}, invalid("top_n", CodeNonPositiveTopN, "must be at least 1, got %d", topN)
	}
	if len(pois) == 0 {
		return Selection{}, &EmptyInputError{Operation: "select"}
	}
	if err := validateScored(pois); err != nil {
		return Selection{}, err
	}

	byCountry := groupByCountry(pois)

	if country, ok := profile.Preferred(); ok {
		if group := byCountry[country]; len(group) >= topN {
			return Selection{
				Country: country,
				POIs:    topByScore(group, topN),
				Level:   LevelPreferred,
			}, nil
		}
	}

	for _, country := range rankByMeanScore(byCountry) {
		if group := byCountry[country]; len(group) >= topN {
			return Selection{
				Country: country,
				POIs:    topByScore(group, topN),
				Level:   LevelBestAverage,
			}, nil
		}
	}

	n := topN
	if n > len(pois) {
		n = len(pois)
	}
	return Selection{
		POIs:       topByScore(pois, n),
		Level:      LevelGlobal,
		LowDensity: true,
	}, nil
}

// validateScored checks the attributes region selection depends on.
func validateScored(pois []POI) error {
	for i := range pois {
		p := &pois[i]
		field := fmt.Sprintf("pois[%d]", i)
		if p.ID == "" {
			return invalid(field+".id", CodeMissingID, "POI has no identifier")
		}
		if p.Country == "" {
			return invalid(field+".country", CodeMissingCountry, "POI %s has no country", p.ID)
		}
		if math.IsNaN(p.Score) || math.IsInf(p.Score, 0) {
			return invalid(field+".score", CodeInvalidScore, "POI %s has non-finite score", p.ID)
		}
	}
	return nil
}

func groupByCountry(pois []POI) map[string][]POI {
	groups := make(map[string][]POI)
	for i := range pois {
		groups[pois[i].Country] = append(groups[pois[i].Country], pois[i])
	}
	return groups
}

// rankByMeanScore orders countries by mean POI score descending, then name ascending.
func rankByMeanScore(groups map[string][]POI) []string {
	type ranked struct {
		country string
		mean    float64
	}
	ranking := make([]ranked, 0, len(groups))
	for country, group := range groups {
		sum := 0.0
		for i := range group {
			sum += group[i].Score
		}
		ranking = append(ranking, ranked{country: country, mean: sum / float64(len(group))})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].mean != ranking[j].mean {
			return ranking[i].mean > ranking[j].mean
		}
		return ranking[i].country < ranking[j].country
	})

	countries := make([]string, len(ranking))
	for i, r := range ranking {
		countries[i] = r.country
	}
	return countries
}

// topByScore returns a sorted copy of the n best POIs.
func topByScore(pois []POI, n int) []POI {
	sorted := make([]POI, len(pois))
	copy(sorted, pois)
	byScore(sorted)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
