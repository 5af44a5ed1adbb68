// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package main is the entry point for the Wayfarer server.
//
// Wayfarer turns a scored catalog of points of interest into day-by-day
// itineraries. The server initializes components in this order:
//
//  1. Configuration: defaults, optional config.yaml, environment (koanf v2)
//  2. Logging: zerolog, with a slog bridge for the supervisor
//  3. Storage: BadgerDB catalog, profiles and history, optionally seeded from CSV
//  4. Providers: preference scorer and like history, each behind a TTL
//     cache and a circuit breaker
//  5. Planner service and, when enabled, the planned-event publisher
//  6. HTTP API (chi) and the suture supervisor tree
//
// The process stops gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("storage_path", cfg.Storage.Path).
		Bool("in_memory", cfg.Storage.InMemory).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Starting Wayfarer")
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Wayfarer stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until ctx is canceled.
func run(ctx context.Context, cfg *config.Config) error {
	app, err := newApp(ctx, cfg, logging.Logger())
	if err != nil {
		return err
	}
	defer app.Close()

	tree, err := app.supervisorTree(logging.NewSlogLogger())
	if err != nil {
		return err
	}

	logging.Info().Str("addr", app.server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			serveErr = err
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return serveErr
}
