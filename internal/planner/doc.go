// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package planner turns scored points of interest into a day-structured
// itinerary.
//
// # Architecture
//
// The pipeline has two deterministic stages:
//
//	scored POIs ─▶ Select ─▶ region-confined POIs ─▶ Allocate ─▶ Itinerary
//
// Select applies a three-tier fallback (preferred, best_average, global)
// to choose which country's POIs to surface. Allocate places POIs into
// day/slot positions under a budget ceiling and an optional per-day
// category diversity rule.
//
// Service wraps both stages with a ScoreProvider and a HistoryProvider so
// a caller can plan from a user ID alone. PreferenceScorer is the baseline
// scoring rule used by the storage-backed ScoreProvider.
//
// # Usage
//
//	sel, err := planner.Select(pois, profile, 5)
//	if err != nil {
//	    return err
//	}
//	it, err := planner.Allocate(sel.POIs, 3, 2, planner.BudgetMedium, true)
//
// # Errors
//
// Malformed input fails with *ValidationError (matches ErrValidation).
// An empty candidate set for Select fails with *EmptyInputError (matches
// ErrEmptyInput). A ceiling that filters out every POI is not an error:
// Allocate returns an itinerary with no slots.
//
// # Thread Safety
//
// Select, Allocate and PreferenceScorer.Score are pure functions that never
// modify their inputs. Service holds no per-call state and is safe for
// concurrent use.
package planner
