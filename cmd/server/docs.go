// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Wayfarer API general information for swag. Generate the OpenAPI
// document with:
//
//	swag init -g cmd/server/docs.go -o docs
//
// @title Wayfarer API
// @version 1.0
// @description Region selection and day-by-day itinerary allocation over a scored POI catalog.
// @description
// @description ## Error Responses
// @description
// @description All errors use the envelope `{"status":"error","error":{"code":"...","message":"...","details":{}}}`.
// @description Validation failures carry `details.field` and `details.reason`.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/wayfarer/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health and readiness
//
// @tag.name Planning
// @tag.description Region selection, allocation and full plans
//
// @tag.name Catalog
// @tag.description Point of interest catalog
//
// @tag.name Users
// @tag.description Like profiles and interaction history
package main
