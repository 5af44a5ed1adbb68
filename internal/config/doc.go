// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package config loads and validates Wayfarer's configuration.

# Configuration Sources

Configuration is layered with koanf, each layer overriding the previous:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    config/config.yaml or /etc/wayfarer/config.yaml
 3. Environment variables with explicit names (see envMappings)

# Configuration Structure

  - ServerConfig: listen address, timeouts, CORS origins, rate limiting
  - StorageConfig: BadgerDB path, in-memory mode, GC interval, CSV seed files
  - PlannerConfig: default top-N, trip geometry, budget ceiling, diversity
  - CacheConfig: provider cache TTL
  - BreakerConfig: circuit breaker thresholds
  - EventsConfig: planned-event publishing (gochannel or nats)
  - LoggingConfig: zerolog level, format and caller info

# Example config.yaml

	server:
	  port: 8080
	  cors_origins: ["https://planner.example.com"]
	storage:
	  path: /var/lib/wayfarer
	  seed_pois: data/pois.csv
	planner:
	  top_n: 8
	  default_ceiling: high
	events:
	  driver: nats
	  nats_url: nats://nats:4222

# Environment Variables

	HTTP_PORT=9090
	STORAGE_IN_MEMORY=true
	PLANNER_TOP_N=5
	CORS_ORIGINS=https://a.example.com,https://b.example.com
	LOG_LEVEL=debug
*/
package config
