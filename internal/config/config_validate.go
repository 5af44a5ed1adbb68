// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// Validate checks that the configuration is complete and within bounds.
// All section errors are reported together.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateStorage(),
		c.validatePlanner(),
		c.validateCache(),
		c.validateBreaker(),
		c.validateEvents(),
		c.validateLogging(),
	)
}

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitReqs < minRateLimitRequests || c.Server.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Server.RateLimitWindow < minRateLimitWindow || c.Server.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateStorage() error {
	if !c.Storage.InMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("STORAGE_PATH is required unless STORAGE_IN_MEMORY=true")
	}
	if c.Storage.GCInterval < 0 {
		return fmt.Errorf("STORAGE_GC_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validatePlanner() error {
	var errs []error
	if c.Planner.TopN < 1 {
		errs = append(errs, fmt.Errorf("PLANNER_TOP_N must be at least 1, got %d", c.Planner.TopN))
	}
	if c.Planner.TripDays < 1 {
		errs = append(errs, fmt.Errorf("PLANNER_TRIP_DAYS must be at least 1, got %d", c.Planner.TripDays))
	}
	if c.Planner.SlotsPerDay < 1 {
		errs = append(errs, fmt.Errorf("PLANNER_SLOTS_PER_DAY must be at least 1, got %d", c.Planner.SlotsPerDay))
	}
	if _, err := planner.ParseBudgetTier(c.Planner.DefaultCeiling); err != nil {
		errs = append(errs, fmt.Errorf("PLANNER_DEFAULT_CEILING: %w", err))
	}
	if c.Planner.LikeBoost < 0 || math.IsNaN(c.Planner.LikeBoost) || math.IsInf(c.Planner.LikeBoost, 0) {
		errs = append(errs, fmt.Errorf("PLANNER_LIKE_BOOST must be a non-negative number"))
	}
	if c.Planner.DefaultDurationHours <= 0 {
		errs = append(errs, fmt.Errorf("PLANNER_DEFAULT_DURATION_HOURS must be positive"))
	}
	return errors.Join(errs...)
}

// PlannerDefaults converts the planner section into planner.Config.
func (c *Config) PlannerDefaults() (planner.Config, error) {
	ceiling, err := planner.ParseBudgetTier(c.Planner.DefaultCeiling)
	if err != nil {
		return planner.Config{}, err
	}
	return planner.Config{
		TopN:             c.Planner.TopN,
		TripDays:         c.Planner.TripDays,
		SlotsPerDay:      c.Planner.SlotsPerDay,
		DefaultCeiling:   ceiling,
		EnforceDiversity: c.Planner.EnforceDiversity,
		LikeBoost:        c.Planner.LikeBoost,
	}, nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

var validEventDrivers = map[string]bool{
	"gochannel": true,
	"nats":      true,
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if !validEventDrivers[c.Events.Driver] {
		return fmt.Errorf("EVENTS_DRIVER must be gochannel or nats, got %q", c.Events.Driver)
	}
	if c.Events.Driver == "nats" {
		if err := validateNATSURL(c.Events.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL: %w", err)
		}
	}
	if c.Events.RatePerSecond < 0 {
		return fmt.Errorf("EVENTS_RATE_PER_SECOND must not be negative")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
