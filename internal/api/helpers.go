// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/planner"
	"github.com/tomtom215/wayfarer/internal/resilience"
	"github.com/tomtom215/wayfarer/internal/storage"
	"github.com/tomtom215/wayfarer/internal/validation"
)

// maxBodyBytes bounds request bodies. A 10000 POI request fits comfortably.
const maxBodyBytes = 8 << 20

// sanitizeLogValue replaces control characters so user input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with an ETag.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope stamped with the request
// ID and elapsed time since start.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: metadata(r, start),
	})
}

func metadata(r *http.Request, start time.Time) models.Metadata {
	md := models.Metadata{
		Timestamp: time.Now(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if !start.IsZero() {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// generateETag hashes the body with FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error envelope. A non-nil err is logged, never sent.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondAPIError(w, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Error().
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: apiErr,
	})
}

// respondDomainError maps planner, storage and resilience errors to HTTP.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *planner.ValidationError
	switch {
	case errors.As(err, &verr):
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    models.CodeValidation,
			Message: verr.Error(),
			Details: map[string]interface{}{
				"field":  verr.Field,
				"reason": verr.Code,
			},
		}, nil)
	case errors.Is(err, planner.ErrEmptyInput):
		respondError(w, http.StatusUnprocessableEntity, models.CodeEmptyInput, err.Error(), nil)
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, models.CodeNotFound, "Resource not found", nil)
	case errors.Is(err, storage.ErrInvalidRecord):
		respondError(w, http.StatusBadRequest, models.CodeValidation, err.Error(), nil)
	case errors.Is(err, resilience.ErrCircuitOpen):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Dependency unavailable")
		respondError(w, http.StatusServiceUnavailable, models.CodeServiceUnavailable, "Service temporarily unavailable", nil)
	case errors.Is(err, context.Canceled):
		// The client is gone; nothing useful can be written.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled")
	default:
		respondError(w, http.StatusInternalServerError, models.CodeInternal, "Internal server error", err)
	}
}

// decodeJSON reads a bounded JSON body into dst. On failure it writes an
// INVALID_JSON response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, models.CodeInvalidJSON, "Request body too large", nil)
			return false
		}
		respondError(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON request body", nil)
		return false
	}
	return true
}

// validateRequest runs the struct's validate tags. It returns nil when the
// request is valid.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeAndValidate combines decodeJSON and validateRequest.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !decodeJSON(w, r, dst) {
		return false
	}
	if apiErr := validateRequest(dst); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return false
	}
	return true
}

// parseCeiling turns the optional textual ceiling into a tier. Empty
// input yields fallback; unknown names yield BudgetUnset so the planner
// rejects them with an invalid_ceiling reason.
func parseCeiling(raw string, fallback planner.BudgetTier) planner.BudgetTier {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	tier, err := planner.ParseBudgetTier(raw)
	if err != nil {
		return planner.BudgetUnset
	}
	return tier
}
