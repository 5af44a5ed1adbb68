// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package planner

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestBudgetTier_Order(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ceiling BudgetTier
		tier    BudgetTier
		want    bool
	}{
		{BudgetLow, BudgetLow, true},
		{BudgetLow, BudgetMedium, false},
		{BudgetMedium, BudgetLow, true},
		{BudgetMedium, BudgetHigh, false},
		{BudgetHigh, BudgetHigh, true},
		{BudgetHigh, BudgetUnset, false},
	}

	for _, tt := range tests {
		if got := tt.ceiling.Admits(tt.tier); got != tt.want {
			t.Errorf("%s.Admits(%s) = %v, want %v", tt.ceiling, tt.tier, got, tt.want)
		}
	}
}

func TestParseBudgetTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    BudgetTier
		wantErr bool
	}{
		{"low", BudgetLow, false},
		{"Medium", BudgetMedium, false},
		{" HIGH ", BudgetHigh, false},
		{"luxury", BudgetUnset, true},
		{"", BudgetUnset, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseBudgetTier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBudgetTier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBudgetTier(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestBudgetTier_JSON(t *testing.T) {
	t.Parallel()

	var p POI
	if err := json.Unmarshal([]byte(`{"id":"x","budget":"medium"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.Budget != BudgetMedium {
		t.Errorf("Budget = %s, want medium", p.Budget)
	}

	if err := json.Unmarshal([]byte(`{"budget":"cheap"}`), &p); err == nil {
		t.Error("Unmarshal() with unknown tier succeeded, want error")
	}

	data, err := json.Marshal(struct {
		Ceiling BudgetTier `json:"ceiling"`
	}{BudgetHigh})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"ceiling":"high"}` {
		t.Errorf("Marshal() = %s, want {\"ceiling\":\"high\"}", data)
	}
}

func TestLikeProfile_Preferred(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile LikeProfile
		want    string
		wantOK  bool
	}{
		{"nil", nil, "", false},
		{"empty", LikeProfile{}, "", false},
		{"only zero counts", LikeProfile{"Spain": 0}, "", false},
		{"single", LikeProfile{"Spain": 2}, "Spain", true},
		{"highest count", LikeProfile{"Spain": 2, "Portugal": 5}, "Portugal", true},
		{"tie by name", LikeProfile{"Spain": 4, "Chile": 4, "Peru": 1}, "Chile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.profile.Preferred()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Preferred() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTimeOfDayLabel(t *testing.T) {
	t.Parallel()

	want := []string{"AM", "PM", "SLOT3", "SLOT4"}
	for i, w := range want {
		if got := TimeOfDayLabel(i); got != w {
			t.Errorf("TimeOfDayLabel(%d) = %s, want %s", i, got, w)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.TopN = 0
	cfg.DefaultCeiling = BudgetUnset
	cfg.LikeBoost = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil, want error")
	}
}
