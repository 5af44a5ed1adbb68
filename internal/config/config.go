// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Planner PlannerConfig `koanf:"planner"`
	Cache   CacheConfig   `koanf:"cache"`
	Breaker BreakerConfig `koanf:"breaker"`
	Events  EventsConfig  `koanf:"events"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"` // per-request handler timeout
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	// RateLimitDisabled turns off the per-IP limiter, e.g. behind a gateway
	// that already limits.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// StorageConfig holds BadgerDB settings and optional CSV seed files.
type StorageConfig struct {
	Path        string        `koanf:"path"`
	InMemory    bool          `koanf:"in_memory"`
	SyncWrites  bool          `koanf:"sync_writes"`
	GCInterval  time.Duration `koanf:"gc_interval"` // 0 disables value log GC
	SeedPOIs    string        `koanf:"seed_pois"`
	SeedUsers   string        `koanf:"seed_users"`
	SeedHistory string        `koanf:"seed_history"`
}

// PlannerConfig holds the planning defaults applied to requests that omit
// a value.
type PlannerConfig struct {
	TopN                 int     `koanf:"top_n"`
	TripDays             int     `koanf:"trip_days"`
	SlotsPerDay          int     `koanf:"slots_per_day"`
	DefaultCeiling       string  `koanf:"default_ceiling"`
	EnforceDiversity     bool    `koanf:"enforce_diversity"`
	LikeBoost            float64 `koanf:"like_boost"`
	DefaultDurationHours float64 `koanf:"default_duration_hours"`
}

// CacheConfig holds provider cache settings. A zero TTL disables caching.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// BreakerConfig holds circuit breaker settings for the providers.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// EventsConfig holds domain event publishing settings.
type EventsConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Driver        string        `koanf:"driver"` // gochannel or nats
	NATSURL       string        `koanf:"nats_url"`
	Topic         string        `koanf:"topic"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`
	MaxReconnects int           `koanf:"max_reconnects"`
	ReconnectWait time.Duration `koanf:"reconnect_wait"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// Load is an alias for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
