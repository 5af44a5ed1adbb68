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

	"github.com/tomtom215/wayfarer/internal/planner"
)

// UserProfile holds a traveler's stated preferences.
type UserProfile struct {
	UserID             string             `json:"user_id" validate:"required,max=128"`
	Name               string             `json:"name,omitempty" validate:"max=256"`
	PreferredClimate   string             `json:"preferred_climate,omitempty" validate:"omitempty,oneof=warm cold temperate"`
	PreferredBudget    planner.BudgetTier `json:"preferred_budget,omitempty"`
	InterestCategories []string           `json:"interest_categories,omitempty" validate:"max=32,dive,min=1,max=64"`
	TripDurationDays   int                `json:"trip_duration_days,omitempty" validate:"min=0,max=60"`
}

// Preferences converts the profile into scorer filters.
func (u *UserProfile) Preferences() planner.Preferences {
	return planner.Preferences{
		Climate:   u.PreferredClimate,
		Budget:    u.PreferredBudget,
		Interests: u.InterestCategories,
	}
}

// PutUser inserts or replaces a user profile.
func (s *Store) PutUser(ctx context.Context, user *UserProfile) (err error) {
	start := time.Now()
	defer func() { observe("put_user", start, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}
	if user.UserID == "" {
		return fmt.Errorf("%w: user has no id", ErrInvalidRecord)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return putJSON(txn, userKeyPrefix+user.UserID, user)
	})
}

// GetUser returns a user profile or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, userID string) (user *UserProfile, err error) {
	start := time.Now()
	defer func() { observe("get_user", start, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	var u UserProfile
	err = s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKeyPrefix+userID, &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// TripDays returns the user's preferred trip length, or zero for users
// without a profile. It implements planner.TripLengthProvider.
func (s *Store) TripDays(ctx context.Context, userID string) (int, error) {
	user, err := s.GetUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return user.TripDurationDays, nil
}

var _ planner.TripLengthProvider = (*Store)(nil)
