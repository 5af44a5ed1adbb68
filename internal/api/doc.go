// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package api exposes the planner over HTTP using the Chi router.

Routes:

	GET  /api/v1/health                      health with storage and breaker checks
	GET  /api/v1/health/live                 liveness probe
	GET  /api/v1/health/ready                readiness probe (503 when degraded)
	POST /api/v1/regions/select              region selection over posted POIs
	POST /api/v1/itineraries/allocate        allocation over posted POIs
	POST /api/v1/itineraries/plan            store-backed score, select and allocate
	GET  /api/v1/pois?pool=                  catalog listing
	GET  /api/v1/users/{id}/likes            derived like profile
	POST /api/v1/users/{id}/interactions     record a click, booking or like
	GET  /metrics                            Prometheus exposition

Every JSON endpoint answers with the models.APIResponse envelope. Domain
errors are mapped to HTTP statuses in one place (respondDomainError):

	planner.ErrValidation     400 VALIDATION_ERROR
	planner.ErrEmptyInput     422 EMPTY_INPUT
	storage.ErrNotFound       404 NOT_FOUND
	resilience.ErrCircuitOpen 503 SERVICE_UNAVAILABLE
	anything else             500 INTERNAL_ERROR

Global middleware, in order: request ID with logging context, real IP,
panic recovery, CORS, Prometheus metrics. The /api/v1 group is rate
limited per client IP with go-chi/httprate; health endpoints use a more
permissive limit.
*/
package api
