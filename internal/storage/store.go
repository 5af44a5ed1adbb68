// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package storage persists the POI catalog, user profiles and interaction
// history in BadgerDB and exposes them to the planner as ScoreProvider and
// HistoryProvider implementations.
//
// Keys are namespaced by prefix and values are JSON:
//
//	poi:<poi_id>                         planner.POI
//	user:<user_id>                       UserProfile
//	hist:<user_id>\x00<unix_nanos>:<poi> Interaction
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	poiKeyPrefix     = "poi:"
	userKeyPrefix    = "user:"
	historyKeyPrefix = "hist:"
)

var (
	// ErrNotFound is returned when a POI or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRecord is returned for records missing their identifiers.
	ErrInvalidRecord = errors.New("invalid record")
)

// Config controls how the database is opened.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory; nothing survives a restart.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// GCRatio is the value log discard ratio passed to RunValueLogGC.
	GCRatio float64
}

// Store is the BadgerDB-backed catalog and history store.
// It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	cfg    Config
	logger zerolog.Logger
}

// Open opens (or creates) the database described by cfg.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("storage path is required unless running in memory")
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	// Badger's own logger is too chatty for the service log.
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{
		db:     db,
		cfg:    cfg,
		logger: logger.With().Str("component", "storage").Logger(),
	}
	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Store opened")
	return s, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("storage is closed")
	}
	return nil
}

// RunGC reclaims value log space until BadgerDB reports nothing left to
// rewrite. It is a no-op for in-memory stores.
func (s *Store) RunGC(ctx context.Context) error {
	if s.cfg.InMemory {
		return nil
	}
	start := time.Now()
	var err error
	defer func() { metrics.RecordStorageOperation("value_log_gc", time.Since(start), err) }()

	for {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = s.db.RunValueLogGC(s.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			err = nil
			return nil
		}
		if err != nil {
			err = fmt.Errorf("run GC: %w", err)
			return err
		}
	}
}

// putJSON marshals value and writes it under key.
func putJSON(txn *badger.Txn, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// getJSON reads key into dst, mapping a missing key to ErrNotFound.
func getJSON(txn *badger.Txn, key string, dst interface{}) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dst)
	})
}

// scanPrefix calls fn with the value of every key under prefix, in key order.
func scanPrefix(txn *badger.Txn, prefix string, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

// observe records the duration and outcome of a storage operation.
func observe(operation string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordStorageOperation(operation, time.Since(start), err)
}
