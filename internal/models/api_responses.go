// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Status is "success" with Data set, or "error" with Error set.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"country": "Portugal", "fallback_level": "preferred", ...},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "top_n: must be positive",
//	    "details": {"field": "top_n", "reason": "non_positive_top_n"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing and cache information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the machine-readable error body.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned in APIError.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeEmptyInput         = "EMPTY_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeRateLimited        = "RATE_LIMITED"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status    string            `json:"status"` // "healthy" or "degraded"
	Version   string            `json:"version"`
	Uptime    float64           `json:"uptime_seconds"`
	Checks    map[string]string `json:"checks"`
	Breakers  map[string]string `json:"circuit_breakers,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
