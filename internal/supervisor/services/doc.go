// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package services adapts long-running components to suture.Service.

	HTTPServerService     *http.Server with graceful shutdown
	StorageGCService      periodic BadgerDB value log GC
	EventConsumerService  planned-event consumer loop

Every wrapper returns ctx.Err() on cancellation and a non-nil error when
its component stops unexpectedly, which is what suture uses to decide on a
restart. Each implements fmt.Stringer so supervisor log lines name it.
*/
package services
