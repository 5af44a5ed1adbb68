// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package planner

import (
	"errors"
	"fmt"
)

// Config holds the defaults Service applies to plan requests that leave
// fields unset.
type Config struct {
	// TopN is the number of POIs region selection surfaces.
	TopN int

	// TripDays is the trip length used when a request does not give one.
	TripDays int

	// SlotsPerDay is the number of positions per day.
	SlotsPerDay int

	// DefaultCeiling is the budget ceiling used when a request has none.
	DefaultCeiling BudgetTier

	// EnforceDiversity forbids two POIs of the same category on one day.
	EnforceDiversity bool

	// LikeBoost is added to scores of POIs the user liked.
	LikeBoost float64
}

// DefaultConfig returns the planner defaults: a 3-day AM/PM trip with
// diversity on and a medium ceiling.
func DefaultConfig() Config {
	return Config{
		TopN:             10,
		TripDays:         3,
		SlotsPerDay:      2,
		DefaultCeiling:   BudgetMedium,
		EnforceDiversity: true,
		LikeBoost:        DefaultLikeBoost,
	}
}

// Validate checks that every default is usable.
//
//nolint:gocritic // value receiver keeps Config immutable
func (c Config) Validate() error {
	var errs []error
	if c.TopN < 1 {
		errs = append(errs, fmt.Errorf("top_n must be at least 1, got %d", c.TopN))
	}
	if c.TripDays < 1 {
		errs = append(errs, fmt.Errorf("trip_days must be at least 1, got %d", c.TripDays))
	}
	if c.SlotsPerDay < 1 {
		errs = append(errs, fmt.Errorf("slots_per_day must be at least 1, got %d", c.SlotsPerDay))
	}
	if !c.DefaultCeiling.Valid() {
		errs = append(errs, errors.New("default_ceiling must be one of low, medium, high"))
	}
	if c.LikeBoost < 0 {
		errs = append(errs, fmt.Errorf("like_boost must not be negative, got %v", c.LikeBoost))
	}
	return errors.Join(errs...)
}
