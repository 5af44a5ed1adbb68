// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

// ScoreProvider returns the scored candidate POIs for a user. Each POI ID
// appears at most once and every POI carries a country and a location.
type ScoreProvider interface {
	ScorePOIs(ctx context.Context, userID, poolID string) ([]POI, error)
}

// HistoryProvider returns the per-country like counts for a user. New
// users get an empty profile, not an error.
type HistoryProvider interface {
	LikeProfile(ctx context.Context, userID string) (LikeProfile, error)
}

// TripLengthProvider returns the user's preferred trip length in days, or
// zero when the user has none.
type TripLengthProvider interface {
	TripDays(ctx context.Context, userID string) (int, error)
}

// PlanPublisher is notified after every successful plan.
type PlanPublisher interface {
	PublishPlanned(ctx context.Context, userID string, plan *Plan) error
}

// AllocateRequest carries the arguments of Allocate.
type AllocateRequest struct {
	POIs             []POI
	TripDays         int
	SlotsPerDay      int
	Ceiling          BudgetTier
	EnforceDiversity bool
}

// PlanRequest asks for a full score, select and allocate run. Zero-valued
// fields take the service defaults.
type PlanRequest struct {
	UserID           string
	PoolID           string
	TopN             int
	TripDays         int
	SlotsPerDay      int
	Ceiling          BudgetTier
	EnforceDiversity *bool
}

// Plan is the outcome of Service.Plan.
type Plan struct {
	Selection Selection `json:"selection"`
	// Location is the single city the itinerary was confined to.
	Location  string    `json:"location"`
	Itinerary Itinerary `json:"itinerary"`
}

// Service runs the selection and allocation pipeline against its providers
// and records logs and metrics for each call. The pure functions Select and
// Allocate hold all of the decision logic; Service adds no state between
// calls and is safe for concurrent use.
type Service struct {
	cfg       Config
	scores    ScoreProvider
	history   HistoryProvider
	publisher PlanPublisher
	trips     TripLengthProvider
	logger    zerolog.Logger
}

// NewService validates cfg and wires the providers.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(cfg Config, scores ScoreProvider, history HistoryProvider, logger zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planner config: %w", err)
	}
	if scores == nil || history == nil {
		return nil, errors.New("planner: score and history providers are required")
	}
	return &Service{
		cfg:     cfg,
		scores:  scores,
		history: history,
		logger:  logger.With().Str("component", "planner").Logger(),
	}, nil
}

// SetPublisher attaches a publisher for planned events. Nil disables publishing.
func (s *Service) SetPublisher(p PlanPublisher) {
	s.publisher = p
}

// SetTripLengths attaches a source of per-user trip lengths, consulted when
// a plan request leaves TripDays unset.
func (s *Service) SetTripLengths(p TripLengthProvider) {
	s.trips = p
}

// Config returns the service defaults.
func (s *Service) Config() Config {
	return s.cfg
}

// Select runs region selection and records the chosen tier.
func (s *Service) Select(ctx context.Context, pois []POI, profile LikeProfile, topN int) (Selection, error) {
	sel, err := Select(pois, profile, topN)
	if err != nil {
		s.recordFailure(ctx, "select", err)
		return Selection{}, err
	}

	metrics.RecordSelection(string(sel.Level), len(sel.POIs))
	event := s.logger.Debug()
	if sel.LowDensity {
		event = s.logger.Warn()
	}
	event.
		Str("fallback_level", string(sel.Level)).
		Str("country", sel.Country).
		Int("selected", len(sel.POIs)).
		Int("top_n", topN).
		Bool("low_density", sel.LowDensity).
		Msg("Region selected")
	return sel, nil
}

// Allocate runs itinerary allocation and records fill statistics.
//
//nolint:gocritic // request is read-only
func (s *Service) Allocate(ctx context.Context, req AllocateRequest) (Itinerary, error) {
	it, err := Allocate(req.POIs, req.TripDays, req.SlotsPerDay, req.Ceiling, req.EnforceDiversity)
	if err != nil {
		s.recordFailure(ctx, "allocate", err)
		return Itinerary{}, err
	}

	metrics.RecordAllocation(it.Len(), it.Capacity())
	s.logger.Debug().
		Int("placed", it.Len()).
		Int("capacity", it.Capacity()).
		Int("candidates", len(req.POIs)).
		Str("ceiling", req.Ceiling.String()).
		Bool("diversity", req.EnforceDiversity).
		Msg("Itinerary allocated")
	return it, nil
}

// Plan scores candidates for the user, selects a region, confines the
// selection to its dominant location and allocates an itinerary.
//
//nolint:gocritic // request is read-only
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*Plan, error) {
	start := time.Now()
	plan, err := s.plan(ctx, req)
	metrics.RecordPlan(planOutcome(plan, err), time.Since(start))
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishPlanned(ctx, req.UserID, plan); pubErr != nil {
			s.logger.Warn().Err(pubErr).Str("user_id", req.UserID).Msg("Failed to publish planned event")
		}
	}
	return plan, nil
}

//nolint:gocritic // request is read-only
func (s *Service) plan(ctx context.Context, req PlanRequest) (*Plan, error) {
	if req.TripDays == 0 && s.trips != nil {
		days, err := s.trips.TripDays(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("load trip length for user %s: %w", req.UserID, err)
		}
		req.TripDays = days
	}
	req = s.withDefaults(req)

	pois, err := s.scores.ScorePOIs(ctx, req.UserID, req.PoolID)
	if err != nil {
		return nil, fmt.Errorf("score POIs for user %s: %w", req.UserID, err)
	}
	profile, err := s.history.LikeProfile(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load like profile for user %s: %w", req.UserID, err)
	}

	sel, err := s.Select(ctx, pois, profile, req.TopN)
	if err != nil {
		return nil, err
	}

	location := DominantLocation(sel.POIs)
	confined := make([]POI, 0, len(sel.POIs))
	for i := range sel.POIs {
		if sel.POIs[i].Location == location {
			confined = append(confined, sel.POIs[i])
		}
	}

	it, err := s.Allocate(ctx, AllocateRequest{
		POIs:             confined,
		TripDays:         req.TripDays,
		SlotsPerDay:      req.SlotsPerDay,
		Ceiling:          req.Ceiling,
		EnforceDiversity: *req.EnforceDiversity,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", req.UserID).
		Str("fallback_level", string(sel.Level)).
		Str("location", location).
		Int("slots", it.Len()).
		Int("capacity", it.Capacity()).
		Msg("Plan built")

	return &Plan{Selection: sel, Location: location, Itinerary: it}, nil
}

//nolint:gocritic // request is copied on purpose
func (s *Service) withDefaults(req PlanRequest) PlanRequest {
	if req.TopN == 0 {
		req.TopN = s.cfg.TopN
	}
	if req.TripDays == 0 {
		req.TripDays = s.cfg.TripDays
	}
	if req.SlotsPerDay == 0 {
		req.SlotsPerDay = s.cfg.SlotsPerDay
	}
	if req.Ceiling == BudgetUnset {
		req.Ceiling = s.cfg.DefaultCeiling
	}
	if req.EnforceDiversity == nil {
		diversity := s.cfg.EnforceDiversity
		req.EnforceDiversity = &diversity
	}
	return req
}

func (s *Service) recordFailure(ctx context.Context, operation string, err error) {
	code := "empty_input"
	var verr *ValidationError
	if errors.As(err, &verr) {
		code = verr.Code
	}
	metrics.RecordValidationFailure(operation, code)

	s.logger.Debug().
		Err(err).
		Str("operation", operation).
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Msg("Rejected input")
}

func planOutcome(plan *Plan, err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case err != nil:
		return "error"
	case plan.Itinerary.Len() == 0:
		return "empty"
	default:
		return "ok"
	}
}

// DominantLocation returns the location holding the most POIs, with ties
// going to the smallest name.
func DominantLocation(pois []POI) string {
	counts := make(map[string]int)
	for i := range pois {
		counts[pois[i].Location]++
	}
	best, bestCount := "", 0
	for location, count := range counts {
		if count > bestCount || (count == bestCount && location < best) {
			best, bestCount = location, count
		}
	}
	return best
}
