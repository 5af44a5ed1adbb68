// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// Interaction types recorded in history.
const (
	InteractionClicked = "clicked"
	InteractionBooked  = "booked"
	InteractionLiked   = "liked"
	InteractionViewed  = "viewed"
)

// Interaction is one user action on a POI.
type Interaction struct {
	UserID          string    `json:"user_id" validate:"required,max=128"`
	POIID           string    `json:"poi_id" validate:"required,max=128"`
	Liked           bool      `json:"liked"`
	InteractionType string    `json:"interaction_type" validate:"omitempty,oneof=clicked booked liked viewed"`
	Timestamp       time.Time `json:"timestamp"`
}

// historyUserPrefix scopes a scan to one user. The NUL separator keeps
// user "u1" from matching the keys of user "u10".
func historyUserPrefix(userID string) string {
	return historyKeyPrefix + userID + "\x00"
}

func historyKey(in *Interaction) string {
	return fmt.Sprintf("%s%020d:%s", historyUserPrefix(in.UserID), in.Timestamp.UnixNano(), in.POIID)
}

// RecordInteraction appends an interaction to the user's history. A zero
// timestamp is replaced with the current time, an empty type defaults
// to clicked, and a liked interaction always sets Liked.
func (s *Store) RecordInteraction(ctx context.Context, in Interaction) (err error) {
	start := time.Now()
	defer func() { observe("record_interaction", start, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}
	if in.UserID == "" || in.POIID == "" {
		return fmt.Errorf("%w: interaction needs user_id and poi_id", ErrInvalidRecord)
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}
	in.Timestamp = in.Timestamp.UTC()
	if in.InteractionType == "" {
		in.InteractionType = InteractionClicked
	}
	if in.InteractionType == InteractionLiked {
		in.Liked = true
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return putJSON(txn, historyKey(&in), &in)
	})
}

// RecordInteractions writes a batch of interactions, typically from an import.
func (s *Store) RecordInteractions(ctx context.Context, ins []Interaction) error {
	for i := range ins {
		if err := s.RecordInteraction(ctx, ins[i]); err != nil {
			return fmt.Errorf("interaction %d: %w", i, err)
		}
	}
	return nil
}

// Interactions returns a user's history, oldest first.
func (s *Store) Interactions(ctx context.Context, userID string) (out []Interaction, err error) {
	start := time.Now()
	defer func() { observe("list_interactions", start, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	out = []Interaction{}
	err = s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, historyUserPrefix(userID), func(val []byte) error {
			var in Interaction
			if uErr := json.Unmarshal(val, &in); uErr != nil {
				return fmt.Errorf("unmarshal interaction: %w", uErr)
			}
			out = append(out, in)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LikedPOIs returns the set of POI IDs the user currently likes. The most
// recent interaction with a POI decides whether it counts as liked.
func (s *Store) LikedPOIs(ctx context.Context, userID string) (map[string]bool, error) {
	history, err := s.Interactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	liked := make(map[string]bool)
	for i := range history {
		if history[i].Liked {
			liked[history[i].POIID] = true
		} else {
			delete(liked, history[i].POIID)
		}
	}
	return liked, nil
}

// LikeProfile counts the user's liked POIs per country. Likes for POIs no
// longer in the catalog are ignored. It implements planner.HistoryProvider.
func (s *Store) LikeProfile(ctx context.Context, userID string) (planner.LikeProfile, error) {
	liked, err := s.LikedPOIs(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := make(planner.LikeProfile)
	for poiID := range liked {
		poi, err := s.GetPOI(ctx, poiID)
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug().Str("user_id", userID).Str("poi_id", poiID).Msg("Liked POI missing from catalog")
			continue
		}
		if err != nil {
			return nil, err
		}
		profile[poi.Country]++
	}
	return profile, nil
}

var _ planner.HistoryProvider = (*Store)(nil)
