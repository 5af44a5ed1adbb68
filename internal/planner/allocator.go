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

// MaxRating is the upper bound of POI.Rating.
const MaxRating = 5.0

// Allocate assigns region-confined POIs to day/slot positions.
//
// POIs above the budget ceiling are dropped, the rest are ordered by score
// (stable, so equal scores keep input order) and placed greedily into the
// next open position. With enforceDiversity set, a candidate whose category
// already appears on the current day is skipped without consuming the
// position.
//
// The scan never backtracks. If diversity rejects every remaining candidate
// for a day's open slot, that slot and all later ones stay empty and the
// itinerary is shorter than its capacity. Filtering down to nothing yields
// an empty itinerary, not an error.
func Allocate(pois []POI, tripDays, slotsPerDay int, ceiling BudgetTier, enforceDiversity bool) (Itinerary, error) {
	if err := validateAllocation(pois, tripDays, slotsPerDay, ceiling); err != nil {
		return Itinerary{}, err
	}

	it := Itinerary{
		TripDays:    tripDays,
		SlotsPerDay: slotsPerDay,
		Slots:       []Slot{},
	}

	candidates := make([]POI, 0, len(pois))
	for i := range pois {
		if ceiling.Admits(pois[i].Budget) {
			candidates = append(candidates, pois[i])
		}
	}
	if len(candidates) == 0 {
		return it, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	capacity := tripDays * slotsPerDay
	usedCategories := make([]map[string]struct{}, tripDays+1)
	for day := 1; day <= tripDays; day++ {
		usedCategories[day] = make(map[string]struct{})
	}

	for i := range candidates {
		position := len(it.Slots)
		if position >= capacity {
			break
		}
		day := position/slotsPerDay + 1
		slot := position % slotsPerDay

		category := candidates[i].Category
		if enforceDiversity {
			if _, used := usedCategories[day][category]; used {
				continue
			}
		}

		it.Slots = append(it.Slots, Slot{
			Day:       day,
			TimeOfDay: TimeOfDayLabel(slot),
			POI:       candidates[i],
		})
		usedCategories[day][category] = struct{}{}
	}

	return it, nil
}

func validateAllocation(pois []POI, tripDays, slotsPerDay int, ceiling BudgetTier) error {
	if tripDays < 1 {
		return invalid("trip_days", CodeInvalidTripDays, "must be at least 1, got %d", tripDays)
	}
	if slotsPerDay < 1 {
		return invalid("slots_per_day", CodeInvalidSlotsPerDay, "must be at least 1, got %d", slotsPerDay)
	}
	if !ceiling.Valid() {
		return invalid("budget_ceiling", CodeInvalidCeiling, "must be one of low, medium, high")
	}
	if len(pois) == 0 {
		return invalid("pois", CodeEmptyCandidates, "at least one candidate POI is required")
	}

	location := pois[0].Location
	for i := range pois {
		if err := validateCandidate(i, &pois[i]); err != nil {
			return err
		}
		if pois[i].Location != location {
			return invalid("pois", CodeMixedLocations,
				"candidates span multiple locations (%q and %q)", location, pois[i].Location)
		}
	}
	return nil
}

// validateCandidate checks the attributes every allocator input must carry.
func validateCandidate(i int, p *POI) error {
	field := fmt.Sprintf("pois[%d]", i)
	switch {
	case p.ID == "":
		return invalid(field+".id", CodeMissingID, "POI has no identifier")
	case p.Location == "":
		return invalid(field+".location", CodeMissingLocation, "POI %s has no location", p.ID)
	case p.Category == "":
		return invalid(field+".category", CodeMissingCategory, "POI %s has no category", p.ID)
	case !p.Budget.Valid():
		return invalid(field+".budget", CodeMissingBudget, "POI %s has no budget tier", p.ID)
	case !(p.DurationHours > 0) || math.IsInf(p.DurationHours, 0):
		return invalid(field+".duration_hours", CodeInvalidDuration,
			"POI %s duration must be positive, got %v", p.ID, p.DurationHours)
	case !(p.Rating >= 0 && p.Rating <= MaxRating):
		return invalid(field+".rating", CodeInvalidRating,
			"POI %s rating must be within 0..%v, got %v", p.ID, MaxRating, p.Rating)
	case math.IsNaN(p.Score) || math.IsInf(p.Score, 0):
		return invalid(field+".score", CodeInvalidScore, "POI %s has non-finite score", p.ID)
	}
	return nil
}
