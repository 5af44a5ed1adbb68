// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package metrics defines the Prometheus instruments exported at /metrics.
//
// Every metric is registered on the default registry through promauto at
// package init; callers use the Record* helpers rather than touching the
// vectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfarer_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfarer_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Planner Metrics
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_region_selections_total",
			Help: "Region selections by fallback level",
		},
		[]string{"fallback_level"}, // preferred, best_average, global
	)

	SelectionSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfarer_region_selection_size",
			Help:    "Number of POIs returned by region selection",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)

	AllocatedSlots = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfarer_itinerary_slots",
			Help:    "Number of slots placed per allocation",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 12, 16, 24, 32},
		},
	)

	UnfilledSlots = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfarer_itinerary_unfilled_slots_total",
			Help: "Positions left empty by allocation (budget filtering or diversity blocking)",
		},
	)

	EmptyItineraries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfarer_itinerary_empty_total",
			Help: "Allocations that placed no POI at all",
		},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_validation_failures_total",
			Help: "Rejected planner inputs by operation and reason code",
		},
		[]string{"operation", "code"},
	)

	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_plans_total",
			Help: "End-to-end plan requests by outcome",
		},
		[]string{"outcome"}, // ok, empty, invalid, empty_input, error
	)

	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfarer_plan_duration_seconds",
			Help:    "Duration of end-to-end plan requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_cache_hits_total",
			Help: "Cache hits by cache name",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_cache_misses_total",
			Help: "Cache misses by cache name",
		},
		[]string{"cache"},
	)

	// Storage Metrics
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfarer_storage_operation_duration_seconds",
			Help:    "Duration of BadgerDB operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"operation"},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_storage_errors_total",
			Help: "Failed BadgerDB operations",
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wayfarer_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_circuit_breaker_requests_total",
			Help: "Requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_events_published_total",
			Help: "Domain events published by topic and result",
		},
		[]string{"topic", "result"}, // success, failure
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_events_consumed_total",
			Help: "Domain events consumed by topic and result",
		},
		[]string{"topic", "result"}, // success, malformed, failure
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSelection records a region selection at the given fallback level.
func RecordSelection(level string, size int) {
	SelectionsTotal.WithLabelValues(level).Inc()
	SelectionSize.Observe(float64(size))
}

// RecordAllocation records how many of capacity positions were filled.
func RecordAllocation(placed, capacity int) {
	AllocatedSlots.Observe(float64(placed))
	if capacity > placed {
		UnfilledSlots.Add(float64(capacity - placed))
	}
	if placed == 0 {
		EmptyItineraries.Inc()
	}
}

// RecordValidationFailure records a rejected planner input.
func RecordValidationFailure(operation, code string) {
	ValidationFailures.WithLabelValues(operation, code).Inc()
}

// RecordPlan records an end-to-end plan request.
func RecordPlan(outcome string, duration time.Duration) {
	PlansTotal.WithLabelValues(outcome).Inc()
	PlanDuration.Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit.
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordStorageOperation records a BadgerDB operation and its outcome.
func RecordStorageOperation(operation string, duration time.Duration, err error) {
	StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StorageErrors.WithLabelValues(operation).Inc()
	}
}

// RecordEventPublished records a publish attempt.
func RecordEventPublished(topic string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordEventConsumed records one consumed event with its result.
func RecordEventConsumed(topic, result string) {
	EventsConsumed.WithLabelValues(topic, result).Inc()
}
