// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is shared by the process; it caches struct
// metadata and is safe for concurrent use. Error field names come from
// json tags, so messages refer to the names clients actually send.
//
// Custom tags:
//
//	budget_tier  "low", "medium" or "high" (any case), or a set planner.BudgetTier
//
// Example:
//
//	type allocateRequest struct {
//	    TripDays      int    `json:"trip_days" validate:"min=1,max=60"`
//	    BudgetCeiling string `json:"budget_ceiling" validate:"required,budget_tier"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
