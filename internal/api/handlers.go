// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/planner"
	"github.com/tomtom215/wayfarer/internal/storage"
)

// Catalog is the store surface the handlers read and write.
type Catalog interface {
	ListPool(ctx context.Context, pool string) ([]planner.POI, error)
	GetPOI(ctx context.Context, id string) (planner.POI, error)
	RecordInteraction(ctx context.Context, in storage.Interaction) error
	Ping(ctx context.Context) error
}

// Invalidator drops cached per-user state after the user's history changes.
type Invalidator interface {
	Invalidate(userID string)
}

// StateReporter reports a circuit breaker state ("closed", "half-open", "open").
type StateReporter interface {
	State() string
}

// Dependencies wires a Handler. Planner, Catalog and Likes are required.
type Dependencies struct {
	Planner *planner.Service
	Catalog Catalog
	// Likes serves GET /users/{id}/likes, normally the same cached and
	// breaker-wrapped provider the planner uses.
	Likes        planner.HistoryProvider
	Invalidators []Invalidator
	Breakers     map[string]StateReporter
	Version      string
}

// Handler implements the HTTP endpoints.
type Handler struct {
	planner      *planner.Service
	catalog      Catalog
	likes        planner.HistoryProvider
	invalidators []Invalidator
	breakers     map[string]StateReporter
	version      string
	startTime    time.Time
}

// NewHandler creates a handler from its dependencies.
func NewHandler(deps Dependencies) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		planner:      deps.Planner,
		catalog:      deps.Catalog,
		likes:        deps.Likes,
		invalidators: deps.Invalidators,
		breakers:     deps.Breakers,
		version:      version,
		startTime:    time.Now(),
	}
}

// SelectRegion runs the three-tier region selection over the posted POIs.
//
// @Summary Select a region
// @Description Picks the user's preferred country, else the best-averaging country with enough POIs, else the global top N
// @Tags Planning
// @Accept json
// @Produce json
// @Param request body models.SelectRequest true "Scored POIs, like profile and top_n"
// @Success 200 {object} models.APIResponse{data=planner.Selection} "Selection"
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 422 {object} models.APIResponse "No POIs supplied"
// @Router /regions/select [post]
func (h *Handler) SelectRegion(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SelectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sel, err := h.planner.Select(r.Context(), req.POIs, req.LikeProfile, req.TopN)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, sel, start)
}

// AllocateItinerary places the posted POIs into a day/slot itinerary.
// An omitted budget_ceiling or enforce_diversity takes the server default;
// trip_days and slots_per_day are required.
//
// @Summary Allocate an itinerary
// @Description Greedily places POIs into day/slot positions under a budget ceiling, optionally one category per day
// @Tags Planning
// @Accept json
// @Produce json
// @Param request body models.AllocateRequest true "Candidate POIs from one location and trip geometry"
// @Success 200 {object} models.APIResponse{data=planner.Itinerary} "Itinerary"
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Router /itineraries/allocate [post]
func (h *Handler) AllocateItinerary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AllocateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	defaults := h.planner.Config()
	diversity := defaults.EnforceDiversity
	if req.EnforceDiversity != nil {
		diversity = *req.EnforceDiversity
	}

	it, err := h.planner.Allocate(r.Context(), planner.AllocateRequest{
		POIs:             req.POIs,
		TripDays:         req.TripDays,
		SlotsPerDay:      req.SlotsPerDay,
		Ceiling:          parseCeiling(req.BudgetCeiling, defaults.DefaultCeiling),
		EnforceDiversity: diversity,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, it, start)
}

// PlanItinerary scores the user's pool, selects a region and allocates an
// itinerary in one call.
//
// @Summary Plan an itinerary for a user
// @Description Scores the user's pool, selects a region, confines it to one location and allocates
// @Tags Planning
// @Accept json
// @Produce json
// @Param request body models.PlanRequest true "User, pool and optional overrides"
// @Success 200 {object} models.APIResponse{data=planner.Plan} "Plan"
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 404 {object} models.APIResponse "Unknown user"
// @Failure 422 {object} models.APIResponse "Empty pool"
// @Failure 503 {object} models.APIResponse "Provider circuit open"
// @Router /itineraries/plan [post]
func (h *Handler) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	plan, err := h.planner.Plan(r.Context(), planner.PlanRequest{
		UserID:           req.UserID,
		PoolID:           req.PoolID,
		TopN:             req.TopN,
		TripDays:         req.TripDays,
		SlotsPerDay:      req.SlotsPerDay,
		Ceiling:          parseCeiling(req.BudgetCeiling, planner.BudgetUnset),
		EnforceDiversity: req.EnforceDiversity,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, plan, start)
}

// ListPOIs lists the catalog, optionally restricted with ?pool= to a
// country or location.
//
// @Summary List catalog POIs
// @Tags Catalog
// @Produce json
// @Param pool query string false "Country or location; empty, * or all for the whole catalog"
// @Success 200 {object} models.APIResponse{data=models.POIListResponse} "POIs"
// @Router /pois [get]
func (h *Handler) ListPOIs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	pool := r.URL.Query().Get("pool")
	if len(pool) > 128 {
		respondError(w, http.StatusBadRequest, models.CodeValidation, "pool must be at most 128 characters", nil)
		return
	}

	pois, err := h.catalog.ListPool(r.Context(), pool)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if pois == nil {
		pois = []planner.POI{}
	}
	respondSuccess(w, r, http.StatusOK, models.POIListResponse{
		Pool:  pool,
		Total: len(pois),
		POIs:  pois,
	}, start)
}

// GetLikes returns the like profile derived from the user's history.
//
// @Summary Get a user's like profile
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.APIResponse{data=models.LikeProfileResponse} "Like counts per country"
// @Failure 503 {object} models.APIResponse "Provider circuit open"
// @Router /users/{id}/likes [get]
func (h *Handler) GetLikes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "id")

	profile, err := h.likes.LikeProfile(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if profile == nil {
		profile = planner.LikeProfile{}
	}

	preferred, _ := profile.Preferred()
	respondSuccess(w, r, http.StatusOK, models.LikeProfileResponse{
		UserID:      userID,
		LikeProfile: profile,
		Preferred:   preferred,
		TotalLikes:  profile.Total(),
	}, start)
}

// RecordInteraction appends a user interaction with a catalog POI and
// drops the user's cached profile and scores.
//
// @Summary Record a user interaction
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.InteractionRequest true "POI and interaction"
// @Success 201 {object} models.APIResponse "Interaction recorded"
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 404 {object} models.APIResponse "Unknown POI"
// @Router /users/{id}/interactions [post]
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "id")

	var req models.InteractionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.catalog.GetPOI(r.Context(), req.POIID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	in := storage.Interaction{
		UserID:          userID,
		POIID:           req.POIID,
		Liked:           req.Liked || req.InteractionType == storage.InteractionLiked,
		InteractionType: req.InteractionType,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}
	if err := h.catalog.RecordInteraction(r.Context(), in); err != nil {
		respondDomainError(w, r, err)
		return
	}

	for _, inv := range h.invalidators {
		inv.Invalidate(userID)
	}

	logging.Ctx(r.Context()).Debug().
		Str("user_id", sanitizeLogValue(userID)).
		Str("poi_id", sanitizeLogValue(req.POIID)).
		Bool("liked", in.Liked).
		Msg("Interaction recorded")

	respondSuccess(w, r, http.StatusCreated, map[string]interface{}{
		"user_id": userID,
		"poi_id":  req.POIID,
		"liked":   in.Liked,
	}, start)
}

// Health reports storage connectivity and circuit breaker states. It
// always answers 200; use HealthReady for a gating probe.
//
// @Summary Get service health
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.healthStatus(r.Context()),
		Metadata: metadata(r, time.Time{}),
	})
}

// HealthLive answers 200 while the process is running.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Process is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r, time.Time{}),
	})
}

// HealthReady answers 503 unless storage is reachable and no breaker is open.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Ready"
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus} "Not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := h.healthStatus(r.Context())

	statusCode := http.StatusOK
	status := "ready"
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status:   status,
		Data:     health,
		Metadata: metadata(r, time.Time{}),
	})
}

func (h *Handler) healthStatus(ctx context.Context) models.HealthStatus {
	status := "healthy"
	checks := map[string]string{"storage": "ok"}
	if err := h.catalog.Ping(ctx); err != nil {
		checks["storage"] = err.Error()
		status = "degraded"
	}

	var breakers map[string]string
	if len(h.breakers) > 0 {
		names := make([]string, 0, len(h.breakers))
		for name := range h.breakers {
			names = append(names, name)
		}
		sort.Strings(names)

		breakers = make(map[string]string, len(names))
		for _, name := range names {
			state := h.breakers[name].State()
			breakers[name] = state
			if state == "open" {
				status = "degraded"
			}
		}
	}

	return models.HealthStatus{
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Checks:    checks,
		Breakers:  breakers,
		Timestamp: time.Now(),
	}
}

// notFound and methodNotAllowed keep unmatched routes inside the envelope.
func notFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, models.CodeNotFound, "Route not found", nil)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
}
