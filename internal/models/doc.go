// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package models defines the HTTP API wire types: the response envelope,
// error codes, request bodies and response payloads.
//
// Domain types (POI, Selection, Itinerary) live in package planner and are
// embedded directly; this package only adds what the transport needs.
package models
