// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"context"
	"errors"
	"io"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/planner"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true}, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testPOI(id, category, location, country string, tier planner.BudgetTier, rating float64) planner.POI {
	return planner.POI{
		ID:            id,
		Name:          "POI " + id,
		Category:      category,
		Location:      location,
		Country:       country,
		Climate:       "warm",
		Budget:        tier,
		DurationHours: 2,
		Rating:        rating,
		Score:         rating,
	}
}

func seedCatalog(t *testing.T, s *Store) {
	t.Helper()
	pois := []planner.POI{
		testPOI("p3", "museum", "Lisbon", "Portugal", planner.BudgetLow, 4.0),
		testPOI("p1", "park", "Lisbon", "Portugal", planner.BudgetMedium, 4.5),
		testPOI("p2", "beach", "Porto", "Portugal", planner.BudgetLow, 3.5),
		testPOI("s1", "museum", "Madrid", "Spain", planner.BudgetHigh, 5.0),
	}
	if err := s.PutPOIs(context.Background(), pois); err != nil {
		t.Fatalf("PutPOIs() error = %v", err)
	}
}

func poiIDs(pois []planner.POI) []string {
	out := make([]string, len(pois))
	for i := range pois {
		out[i] = pois[i].ID
	}
	return out
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(Config{}, zerolog.New(io.Discard)); err == nil {
		t.Error("Open() without path succeeded, want error")
	}
}

func TestStore_POIs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)

	got, err := s.GetPOI(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPOI() error = %v", err)
	}
	if got.Category != "park" || got.Budget != planner.BudgetMedium || got.Location != "Lisbon" {
		t.Errorf("GetPOI() = %+v", got)
	}

	if _, err := s.GetPOI(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPOI(missing) error = %v, want ErrNotFound", err)
	}

	all, err := s.ListPOIs(ctx)
	if err != nil {
		t.Fatalf("ListPOIs() error = %v", err)
	}
	if want := []string{"p1", "p2", "p3", "s1"}; !reflect.DeepEqual(poiIDs(all), want) {
		t.Errorf("ListPOIs() = %v, want %v", poiIDs(all), want)
	}

	if err := s.DeletePOI(ctx, "p2"); err != nil {
		t.Fatalf("DeletePOI() error = %v", err)
	}
	if _, err := s.GetPOI(ctx, "p2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPOI(deleted) error = %v, want ErrNotFound", err)
	}

	if err := s.PutPOIs(ctx, []planner.POI{{Name: "no id"}}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("PutPOIs(no id) error = %v, want ErrInvalidRecord", err)
	}
}

func TestStore_ListPool(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedCatalog(t, s)

	tests := []struct {
		pool string
		want []string
	}{
		{"", []string{"p1", "p2", "p3", "s1"}},
		{"*", []string{"p1", "p2", "p3", "s1"}},
		{"ALL", []string{"p1", "p2", "p3", "s1"}},
		{"portugal", []string{"p1", "p2", "p3"}},
		{"Lisbon", []string{"p1", "p3"}},
		{"Atlantis", []string{}},
	}

	for _, tt := range tests {
		got, err := s.ListPool(context.Background(), tt.pool)
		if err != nil {
			t.Fatalf("ListPool(%q) error = %v", tt.pool, err)
		}
		if !reflect.DeepEqual(poiIDs(got), tt.want) {
			t.Errorf("ListPool(%q) = %v, want %v", tt.pool, poiIDs(got), tt.want)
		}
	}
}

func TestStore_Users(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	user := &UserProfile{
		UserID:             "u1",
		Name:               "Ana",
		PreferredClimate:   "warm",
		PreferredBudget:    planner.BudgetLow,
		InterestCategories: []string{"museum", "beach"},
		TripDurationDays:   4,
	}
	if err := s.PutUser(ctx, user); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}

	got, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if !reflect.DeepEqual(got, user) {
		t.Errorf("GetUser() = %+v, want %+v", got, user)
	}

	prefs := got.Preferences()
	if prefs.Climate != "warm" || prefs.Budget != planner.BudgetLow || len(prefs.Interests) != 2 {
		t.Errorf("Preferences() = %+v", prefs)
	}

	if days, err := s.TripDays(ctx, "u1"); err != nil || days != 4 {
		t.Errorf("TripDays(u1) = %d, %v, want 4", days, err)
	}
	if days, err := s.TripDays(ctx, "u2"); err != nil || days != 0 {
		t.Errorf("TripDays(u2) = %d, %v, want 0", days, err)
	}

	if _, err := s.GetUser(ctx, "u2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.PutUser(ctx, &UserProfile{}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("PutUser(no id) error = %v, want ErrInvalidRecord", err)
	}
}

func TestStore_History(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []Interaction{
		{UserID: "u1", POIID: "p1", Liked: true, InteractionType: InteractionLiked, Timestamp: base},
		{UserID: "u1", POIID: "p2", Liked: true, Timestamp: base.Add(time.Hour)},
		{UserID: "u1", POIID: "s1", Liked: true, Timestamp: base.Add(2 * time.Hour)},
		{UserID: "u1", POIID: "s1", Liked: false, Timestamp: base.Add(3 * time.Hour)},
		{UserID: "u1", POIID: "gone", Liked: true, Timestamp: base.Add(4 * time.Hour)},
		{UserID: "u10", POIID: "s1", Liked: true, Timestamp: base},
	}
	if err := s.RecordInteractions(ctx, history); err != nil {
		t.Fatalf("RecordInteractions() error = %v", err)
	}

	got, err := s.Interactions(ctx, "u1")
	if err != nil {
		t.Fatalf("Interactions() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Interactions(u1) returned %d, want 5", len(got))
	}
	if got[0].POIID != "p1" || got[4].POIID != "gone" {
		t.Errorf("Interactions() not in time order: %+v", got)
	}
	if got[1].InteractionType != InteractionClicked {
		t.Errorf("default interaction type = %q, want %q", got[1].InteractionType, InteractionClicked)
	}

	liked, err := s.LikedPOIs(ctx, "u1")
	if err != nil {
		t.Fatalf("LikedPOIs() error = %v", err)
	}
	if want := map[string]bool{"p1": true, "p2": true, "gone": true}; !reflect.DeepEqual(liked, want) {
		t.Errorf("LikedPOIs() = %v, want %v", liked, want)
	}

	profile, err := s.LikeProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("LikeProfile() error = %v", err)
	}
	if want := (planner.LikeProfile{"Portugal": 2}); !reflect.DeepEqual(profile, want) {
		t.Errorf("LikeProfile(u1) = %v, want %v", profile, want)
	}

	profile, err = s.LikeProfile(ctx, "newcomer")
	if err != nil {
		t.Fatalf("LikeProfile(newcomer) error = %v", err)
	}
	if len(profile) != 0 {
		t.Errorf("LikeProfile(newcomer) = %v, want empty", profile)
	}

	if err := s.RecordInteraction(ctx, Interaction{UserID: "u1"}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("RecordInteraction(no poi) error = %v, want ErrInvalidRecord", err)
	}
}

func TestScoreProvider_ScorePOIs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)

	if err := s.PutUser(ctx, &UserProfile{
		UserID:             "u1",
		PreferredClimate:   "warm",
		PreferredBudget:    planner.BudgetLow,
		InterestCategories: []string{"museum", "beach"},
	}); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}
	if err := s.RecordInteraction(ctx, Interaction{UserID: "u1", POIID: "p2", Liked: true}); err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}

	provider := NewScoreProvider(s, planner.DefaultLikeBoost)

	pois, err := provider.ScorePOIs(ctx, "u1", "Portugal")
	if err != nil {
		t.Fatalf("ScorePOIs() error = %v", err)
	}
	// p3: 4.0/5 = 0.8. p2: 3.5/5 + 0.5 = 1.2. p1 is medium budget and filtered.
	if want := []string{"p2", "p3"}; !reflect.DeepEqual(poiIDs(pois), want) {
		t.Fatalf("ScorePOIs() = %v, want %v", poiIDs(pois), want)
	}
	if math.Abs(pois[0].Score-1.2) > 1e-9 || math.Abs(pois[1].Score-0.8) > 1e-9 {
		t.Errorf("scores = (%v, %v), want (1.2, 0.8)", pois[0].Score, pois[1].Score)
	}

	anon, err := provider.ScorePOIs(ctx, "anonymous", "")
	if err != nil {
		t.Fatalf("ScorePOIs(anonymous) error = %v", err)
	}
	if len(anon) != 4 {
		t.Errorf("ScorePOIs(anonymous) returned %d POIs, want the whole catalog", len(anon))
	}
}

func TestStore_PingAndGC(t *testing.T) {
	t.Parallel()

	s, err := Open(Config{InMemory: true}, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := s.RunGC(ctx); err != nil {
		t.Errorf("RunGC() on in-memory store error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Ping(ctx); err == nil {
		t.Error("Ping() after Close() succeeded, want error")
	}
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ListPOIs(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ListPOIs() error = %v, want context.Canceled", err)
	}
}

func TestStore_RecordInteraction_LikedType(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	seedCatalog(t, s)

	if err := s.RecordInteraction(ctx, Interaction{UserID: "u2", POIID: "p1", InteractionType: InteractionLiked}); err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}

	got, err := s.Interactions(ctx, "u2")
	if err != nil {
		t.Fatalf("Interactions() error = %v", err)
	}
	if len(got) != 1 || !got[0].Liked {
		t.Fatalf("Interactions(u2) = %+v, want one liked interaction", got)
	}

	profile, err := s.LikeProfile(ctx, "u2")
	if err != nil {
		t.Fatalf("LikeProfile() error = %v", err)
	}
	if want := (planner.LikeProfile{"Portugal": 1}); !reflect.DeepEqual(profile, want) {
		t.Errorf("LikeProfile(u2) = %v, want %v", profile, want)
	}
}
