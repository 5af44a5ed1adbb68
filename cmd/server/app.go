// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/api"
	"github.com/tomtom215/wayfarer/internal/cache"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/events"
	"github.com/tomtom215/wayfarer/internal/planner"
	"github.com/tomtom215/wayfarer/internal/resilience"
	"github.com/tomtom215/wayfarer/internal/storage"
	"github.com/tomtom215/wayfarer/internal/supervisor"
	"github.com/tomtom215/wayfarer/internal/supervisor/services"
)

// app holds the long-lived components and the order they close in.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	store    *storage.Store
	service  *planner.Service
	server   *http.Server
	consumer *events.Consumer

	closers []func()
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (a *app, err error) {
	a = &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	store, err := storage.Open(storage.Config{
		Path:       cfg.Storage.Path,
		InMemory:   cfg.Storage.InMemory,
		SyncWrites: cfg.Storage.SyncWrites,
	}, logger)
	if err != nil {
		return a, fmt.Errorf("open storage: %w", err)
	}
	a.store = store
	a.onClose(func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("Failed to close storage")
		}
	})

	seed := storage.SeedFiles{
		POIs:    cfg.Storage.SeedPOIs,
		Users:   cfg.Storage.SeedUsers,
		History: cfg.Storage.SeedHistory,
	}
	if seed != (storage.SeedFiles{}) {
		if err := store.Seed(ctx, seed, cfg.Planner.DefaultDurationHours); err != nil {
			return a, fmt.Errorf("seed storage: %w", err)
		}
	}

	defaults, err := cfg.PlannerDefaults()
	if err != nil {
		return a, err
	}

	var (
		scores       planner.ScoreProvider   = storage.NewScoreProvider(store, cfg.Planner.LikeBoost)
		history      planner.HistoryProvider = store
		invalidators []api.Invalidator
	)
	if cfg.Cache.TTL > 0 {
		cachedScores := cache.NewCachedScores(scores, cfg.Cache.TTL)
		cachedHistory := cache.NewCachedHistory(history, cfg.Cache.TTL)
		a.onClose(cachedScores.Close)
		a.onClose(cachedHistory.Close)
		scores, history = cachedScores, cachedHistory
		invalidators = append(invalidators, cachedScores, cachedHistory)
	}

	breakerCfg := resilience.Config{
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	}
	scoreBreaker := resilience.NewScoreProvider(scores, breakerCfg)
	historyBreaker := resilience.NewHistoryProvider(history, breakerCfg)

	service, err := planner.NewService(defaults, scoreBreaker, historyBreaker, logger)
	if err != nil {
		return a, fmt.Errorf("create planner: %w", err)
	}
	service.SetTripLengths(store)
	a.service = service

	if cfg.Events.Enabled {
		if err := a.wireEvents(); err != nil {
			return a, err
		}
	}

	handler := api.NewHandler(api.Dependencies{
		Planner:      service,
		Catalog:      store,
		Likes:        historyBreaker,
		Invalidators: invalidators,
		Breakers: map[string]api.StateReporter{
			"score-provider":   scoreBreaker,
			"history-provider": historyBreaker,
		},
		Version: version,
	})

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Server.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Server.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Server.RateLimitDisabled
	mwCfg.RequestTimeout = cfg.Server.Timeout

	a.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, api.NewChiMiddleware(mwCfg)).Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	return a, nil
}

// wireEvents attaches the planned-event publisher to the planner and builds
// the audit consumer that logs every published plan.
func (a *app) wireEvents() error {
	evCfg := events.Config{
		Driver:        a.cfg.Events.Driver,
		NATSURL:       a.cfg.Events.NATSURL,
		Topic:         a.cfg.Events.Topic,
		RatePerSecond: a.cfg.Events.RatePerSecond,
		Burst:         a.cfg.Events.Burst,
		MaxReconnects: a.cfg.Events.MaxReconnects,
		ReconnectWait: a.cfg.Events.ReconnectWait,
	}
	pub, err := events.NewPublisher(evCfg, a.logger)
	if err != nil {
		return fmt.Errorf("create event publisher: %w", err)
	}
	a.onClose(func() {
		if cerr := pub.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close event publisher")
		}
	})
	a.service.SetPublisher(pub)

	var sub message.Subscriber
	if evCfg.Driver == events.DriverNATS {
		sub, err = events.NewSubscriber(evCfg, a.logger)
		if err != nil {
			return err
		}
		a.onClose(func() {
			if cerr := sub.Close(); cerr != nil {
				a.logger.Error().Err(cerr).Msg("Failed to close event subscriber")
			}
		})
	} else {
		sub = pub.Subscriber()
	}

	a.consumer = events.NewConsumer(sub, pub.Topic(), events.LogPlanned(a.logger), a.logger)
	return nil
}

// supervisorTree places the background services in their layers.
func (a *app) supervisorTree(logger *slog.Logger) (*supervisor.SupervisorTree, error) {
	treeCfg := supervisor.DefaultTreeConfig()
	if a.cfg.Server.ShutdownTimeout > 0 {
		treeCfg.ShutdownTimeout = a.cfg.Server.ShutdownTimeout
	}
	tree, err := supervisor.NewSupervisorTree(logger, treeCfg)
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	if a.cfg.Storage.GCInterval > 0 && !a.cfg.Storage.InMemory {
		tree.AddDataService(services.NewStorageGCService(a.store, a.cfg.Storage.GCInterval, a.logger))
	}
	if a.consumer != nil {
		tree.AddMessagingService(services.NewEventConsumerService(a.consumer, "plan-audit"))
	}
	tree.AddAPIService(services.NewHTTPServerService(a.server, a.cfg.Server.ShutdownTimeout))
	return tree, nil
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close releases components in reverse construction order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
