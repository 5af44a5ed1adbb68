// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"time"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// SelectRequest is the body of POST /api/v1/regions/select.
type SelectRequest struct {
	POIs        []planner.POI       `json:"pois" validate:"max=10000"`
	LikeProfile planner.LikeProfile `json:"like_profile"`
	TopN        int                 `json:"top_n"`
}

// AllocateRequest is the body of POST /api/v1/itineraries/allocate.
type AllocateRequest struct {
	POIs             []planner.POI `json:"pois" validate:"max=10000"`
	TripDays         int           `json:"trip_days" validate:"max=60"`
	SlotsPerDay      int           `json:"slots_per_day" validate:"max=24"`
	BudgetCeiling    string        `json:"budget_ceiling"`
	EnforceDiversity *bool         `json:"enforce_diversity"`
}

// PlanRequest is the body of POST /api/v1/itineraries/plan. Omitted
// fields take the server defaults.
type PlanRequest struct {
	UserID           string `json:"user_id" validate:"required,max=128"`
	PoolID           string `json:"pool_id" validate:"max=128"`
	TopN             int    `json:"top_n" validate:"min=0,max=1000"`
	TripDays         int    `json:"trip_days" validate:"min=0,max=60"`
	SlotsPerDay      int    `json:"slots_per_day" validate:"min=0,max=24"`
	BudgetCeiling    string `json:"budget_ceiling" validate:"omitempty,budget_tier"`
	EnforceDiversity *bool  `json:"enforce_diversity"`
}

// InteractionRequest is the body of POST /api/v1/users/{id}/interactions.
type InteractionRequest struct {
	POIID           string     `json:"poi_id" validate:"required,max=128"`
	Liked           bool       `json:"liked"`
	InteractionType string     `json:"interaction_type" validate:"omitempty,oneof=clicked booked liked viewed"`
	Timestamp       *time.Time `json:"timestamp"`
}

// POIListResponse is the payload of GET /api/v1/pois.
type POIListResponse struct {
	Pool  string        `json:"pool,omitempty"`
	Total int           `json:"total"`
	POIs  []planner.POI `json:"pois"`
}

// LikeProfileResponse is the payload of GET /api/v1/users/{id}/likes.
type LikeProfileResponse struct {
	UserID      string              `json:"user_id"`
	LikeProfile planner.LikeProfile `json:"like_profile"`
	Preferred   string              `json:"preferred_country,omitempty"`
	TotalLikes  int                 `json:"total_likes"`
}
