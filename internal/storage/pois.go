// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// PutPOIs inserts or replaces catalog entries in one batch.
func (s *Store) PutPOIs(ctx context.Context, pois []planner.POI) (err error) {
	start := time.Now()
	defer func() { observe("put_pois", start, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range pois {
		if pois[i].ID == "" {
			return fmt.Errorf("%w: POI at index %d has no id", ErrInvalidRecord, i)
		}
		data, mErr := json.Marshal(&pois[i])
		if mErr != nil {
			return fmt.Errorf("marshal POI %s: %w", pois[i].ID, mErr)
		}
		if err = wb.Set([]byte(poiKeyPrefix+pois[i].ID), data); err != nil {
			return fmt.Errorf("stage POI %s: %w", pois[i].ID, err)
		}
	}
	if err = wb.Flush(); err != nil {
		return fmt.Errorf("flush POIs: %w", err)
	}
	return nil
}

// GetPOI returns one catalog entry or ErrNotFound.
func (s *Store) GetPOI(ctx context.Context, id string) (poi planner.POI, err error) {
	start := time.Now()
	defer func() { observe("get_poi", start, err) }()

	if err = ctx.Err(); err != nil {
		return planner.POI{}, err
	}
	err = s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, poiKeyPrefix+id, &poi)
	})
	return poi, err
}

// ListPOIs returns the whole catalog ordered by POI ID.
func (s *Store) ListPOIs(ctx context.Context) ([]planner.POI, error) {
	return s.listPOIs(ctx, func(*planner.POI) bool { return true })
}

// ListPool returns the catalog entries in pool. An empty pool, "*" or
// "all" selects everything; any other value matches a country or a
// location, case-insensitively.
func (s *Store) ListPool(ctx context.Context, pool string) ([]planner.POI, error) {
	pool = strings.TrimSpace(pool)
	if pool == "" || pool == "*" || strings.EqualFold(pool, "all") {
		return s.ListPOIs(ctx)
	}
	return s.listPOIs(ctx, func(p *planner.POI) bool {
		return strings.EqualFold(p.Country, pool) || strings.EqualFold(p.Location, pool)
	})
}

func (s *Store) listPOIs(ctx context.Context, keep func(*planner.POI) bool) (pois []planner.POI, err error) {
	start := time.Now()
	defer func() { observe("list_pois", start, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	pois = []planner.POI{}
	err = s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, poiKeyPrefix, func(val []byte) error {
			var p planner.POI
			if uErr := json.Unmarshal(val, &p); uErr != nil {
				return fmt.Errorf("unmarshal POI: %w", uErr)
			}
			if keep(&p) {
				pois = append(pois, p)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return pois, nil
}

// DeletePOI removes a catalog entry. Deleting a missing POI is not an error.
func (s *Store) DeletePOI(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete_poi", start, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(poiKeyPrefix + id))
	})
}
