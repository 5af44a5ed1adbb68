// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package planner

import (
	"fmt"
	"sort"
	"strings"
)

// BudgetTier is the ordinal cost category of a POI.
// The zero value is BudgetUnset and never passes validation.
type BudgetTier int

const (
	// BudgetUnset marks a POI or request without a budget tier.
	BudgetUnset BudgetTier = iota
	// BudgetLow is the cheapest tier.
	BudgetLow
	// BudgetMedium sits between low and high.
	BudgetMedium
	// BudgetHigh is the most expensive tier.
	BudgetHigh
)

// String returns the lowercase tier name.
func (b BudgetTier) String() string {
	switch b {
	case BudgetLow:
		return "low"
	case BudgetMedium:
		return "medium"
	case BudgetHigh:
		return "high"
	default:
		return "unset"
	}
}

// Valid reports whether b is one of low, medium or high.
func (b BudgetTier) Valid() bool {
	return b >= BudgetLow && b <= BudgetHigh
}

// Admits reports whether a POI of tier t fits under ceiling b.
func (b BudgetTier) Admits(t BudgetTier) bool {
	return t.Valid() && t <= b
}

// ParseBudgetTier parses "low", "medium" or "high" (case-insensitive).
func ParseBudgetTier(s string) (BudgetTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return BudgetLow, nil
	case "medium":
		return BudgetMedium, nil
	case "high":
		return BudgetHigh, nil
	default:
		return BudgetUnset, fmt.Errorf("unknown budget tier %q", s)
	}
}

// MarshalText encodes the tier by name. Unset tiers encode as an empty string.
func (b BudgetTier) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return []byte{}, nil
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes a tier name. An empty string leaves the tier unset.
func (b *BudgetTier) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = BudgetUnset
		return nil
	}
	tier, err := ParseBudgetTier(string(text))
	if err != nil {
		return err
	}
	*b = tier
	return nil
}

// POI is a scored point of interest. Values are treated as immutable
// snapshots: every operation in this package copies rather than mutates.
type POI struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Location      string     `json:"location"`
	Country       string     `json:"country"`
	Climate       string     `json:"climate,omitempty"`
	Budget        BudgetTier `json:"budget"`
	DurationHours float64    `json:"duration_hours"`
	Rating        float64    `json:"rating"`
	Score         float64    `json:"score"`
}

// LikeProfile maps a country to the number of distinct POIs the user liked there.
type LikeProfile map[string]int

// Preferred returns the most-liked country. Ties resolve to the
// lexicographically smallest name. Countries with a zero count are ignored.
func (p LikeProfile) Preferred() (string, bool) {
	best, bestCount := "", 0
	for country, count := range p {
		if count <= 0 {
			continue
		}
		if count > bestCount || (count == bestCount && country < best) {
			best, bestCount = country, count
		}
	}
	return best, bestCount > 0
}

// Total returns the sum of all like counts.
func (p LikeProfile) Total() int {
	total := 0
	for _, count := range p {
		total += count
	}
	return total
}

// FallbackLevel records which selection tier produced a Selection.
type FallbackLevel string

const (
	// LevelPreferred means the user's most-liked country had enough POIs.
	LevelPreferred FallbackLevel = "preferred"
	// LevelBestAverage means the best-scoring country by mean score was used.
	LevelBestAverage FallbackLevel = "best_average"
	// LevelGlobal means no single country had enough POIs.
	LevelGlobal FallbackLevel = "global"
)

// Selection is the result of region selection.
type Selection struct {
	// Country is empty for LevelGlobal selections.
	Country string        `json:"country,omitempty"`
	POIs    []POI         `json:"pois"`
	Level   FallbackLevel `json:"fallback_level"`
	// LowDensity is set on global selections: no country held topN POIs.
	LowDensity bool `json:"low_density"`
}

// Slot is one placed POI at a (day, time of day) position.
type Slot struct {
	Day       int    `json:"day"`
	TimeOfDay string `json:"time_of_day"`
	POI       POI    `json:"poi"`
}

// Itinerary is the ordered result of allocation. Slots are in placement
// order, which is also day/slot order.
type Itinerary struct {
	TripDays    int    `json:"trip_days"`
	SlotsPerDay int    `json:"slots_per_day"`
	Slots       []Slot `json:"slots"`
}

// Capacity returns the maximum number of slots the itinerary could hold.
func (it Itinerary) Capacity() int {
	return it.TripDays * it.SlotsPerDay
}

// Len returns the number of placed slots.
func (it Itinerary) Len() int {
	return len(it.Slots)
}

// Unfilled returns how many positions were left empty.
func (it Itinerary) Unfilled() int {
	return it.Capacity() - len(it.Slots)
}

// Day returns the slots placed on the given 1-based day.
func (it Itinerary) Day(day int) []Slot {
	var out []Slot
	for _, s := range it.Slots {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

// TimeOfDayLabel names the slot at index slot within a day.
// The first two are AM and PM; later slots are numbered SLOT3, SLOT4, ...
func TimeOfDayLabel(slot int) string {
	switch slot {
	case 0:
		return "AM"
	case 1:
		return "PM"
	default:
		return fmt.Sprintf("SLOT%d", slot+1)
	}
}

// byScore orders POIs by score descending, then ID ascending.
func byScore(pois []POI) {
	sort.SliceStable(pois, func(i, j int) bool {
		if pois[i].Score != pois[j].Score {
			return pois[i].Score > pois[j].Score
		}
		return pois[i].ID < pois[j].ID
	})
}
