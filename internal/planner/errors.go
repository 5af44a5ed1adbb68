// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package planner

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyInput matches every *EmptyInputError.
	ErrEmptyInput = errors.New("empty input")
)

// Validation failure codes. They are stable and safe to use as metric labels.
const (
	CodeNonPositiveTopN    = "non_positive_top_n"
	CodeEmptyCandidates    = "empty_candidates"
	CodeMissingID          = "missing_id"
	CodeMissingCategory    = "missing_category"
	CodeMissingCountry     = "missing_country"
	CodeMissingLocation    = "missing_location"
	CodeMissingBudget      = "missing_budget"
	CodeInvalidDuration    = "invalid_duration"
	CodeInvalidRating      = "invalid_rating"
	CodeInvalidScore       = "invalid_score"
	CodeMixedLocations     = "mixed_locations"
	CodeInvalidCeiling     = "invalid_ceiling"
	CodeInvalidTripDays    = "invalid_trip_days"
	CodeInvalidSlotsPerDay = "invalid_slots_per_day"
)

// ValidationError reports contractually invalid input. It is never retried.
type ValidationError struct {
	// Field names the offending input, e.g. "top_n" or "pois[3].category".
	Field string
	// Code is one of the Code* constants.
	Code string
	// Reason is a human-readable explanation.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// EmptyInputError reports that an operation received no candidates at all.
// A result that was filtered down to nothing is not an error.
type EmptyInputError struct {
	Operation string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no candidate POIs", e.Operation)
}

// Is makes errors.Is(err, ErrEmptyInput) succeed.
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

func invalid(field, code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Code: code, Reason: fmt.Sprintf(format, args...)}
}
