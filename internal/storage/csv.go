// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// csvTable is a header-indexed CSV reader. Columns are looked up by name,
// so column order and extra columns do not matter.
type csvTable struct {
	reader  *csv.Reader
	columns map[string]int
	line    int
}

func newCSVTable(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return &csvTable{reader: reader, columns: columns, line: 1}, nil
}

// next returns the next row, or io.EOF.
func (t *csvTable) next() ([]string, error) {
	row, err := t.reader.Read()
	t.line++
	return row, err
}

func (t *csvTable) get(row []string, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) float(row []string, name string) (float64, bool, error) {
	raw := t.get(row, name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("line %d: %s: %w", t.line, name, err)
	}
	return v, true, nil
}

// ParsePOIsCSV reads a POI catalog. Required columns are poi_id, name,
// category, location, country and budget; duration_hours, rating, climate
// and score are optional. Missing durations and scores are filled by
// planner.NormalizePOI.
func ParsePOIsCSV(r io.Reader, defaultDuration float64) ([]planner.POI, error) {
	table, err := newCSVTable(r, "poi_id", "name", "category", "location", "country", "budget")
	if err != nil {
		return nil, err
	}

	var pois []planner.POI
	for {
		row, err := table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", table.line, err)
		}

		budget, err := planner.ParseBudgetTier(table.get(row, "budget"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", table.line, err)
		}
		duration, _, err := table.float(row, "duration_hours")
		if err != nil {
			return nil, err
		}
		rating, _, err := table.float(row, "rating")
		if err != nil {
			return nil, err
		}
		score, hasScore, err := table.float(row, "score")
		if err != nil {
			return nil, err
		}

		poi := planner.POI{
			ID:            table.get(row, "poi_id"),
			Name:          table.get(row, "name"),
			Category:      table.get(row, "category"),
			Location:      table.get(row, "location"),
			Country:       table.get(row, "country"),
			Climate:       table.get(row, "climate"),
			Budget:        budget,
			DurationHours: duration,
			Rating:        rating,
			Score:         score,
		}
		if poi.ID == "" {
			return nil, fmt.Errorf("line %d: %w: empty poi_id", table.line, ErrInvalidRecord)
		}
		pois = append(pois, planner.NormalizePOI(poi, hasScore, defaultDuration))
	}
	return pois, nil
}

// ParseUsersCSV reads user profiles. interest_categories is a
// comma-separated list inside one field.
func ParseUsersCSV(r io.Reader) ([]UserProfile, error) {
	table, err := newCSVTable(r, "user_id")
	if err != nil {
		return nil, err
	}

	var users []UserProfile
	for {
		row, err := table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", table.line, err)
		}

		u := UserProfile{
			UserID:           table.get(row, "user_id"),
			Name:             table.get(row, "name"),
			PreferredClimate: strings.ToLower(table.get(row, "preferred_climate")),
		}
		if u.UserID == "" {
			return nil, fmt.Errorf("line %d: %w: empty user_id", table.line, ErrInvalidRecord)
		}
		if raw := table.get(row, "preferred_budget"); raw != "" {
			if u.PreferredBudget, err = planner.ParseBudgetTier(raw); err != nil {
				return nil, fmt.Errorf("line %d: %w", table.line, err)
			}
		}
		for _, interest := range strings.Split(table.get(row, "interest_categories"), ",") {
			if interest = strings.TrimSpace(interest); interest != "" {
				u.InterestCategories = append(u.InterestCategories, interest)
			}
		}
		if raw := table.get(row, "trip_duration_days"); raw != "" {
			if u.TripDurationDays, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("line %d: trip_duration_days: %w", table.line, err)
			}
		}
		users = append(users, u)
	}
	return users, nil
}

// historyTimeLayouts are the timestamp formats accepted in history files.
var historyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseHistoryCSV reads interactions. liked accepts 1/0 and true/false;
// a row of type liked counts as liked whatever the flag says. A missing
// timestamp is left zero and filled in when recorded.
func ParseHistoryCSV(r io.Reader) ([]Interaction, error) {
	table, err := newCSVTable(r, "user_id", "poi_id", "liked")
	if err != nil {
		return nil, err
	}

	var out []Interaction
	for {
		row, err := table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", table.line, err)
		}

		liked, err := strconv.ParseBool(table.get(row, "liked"))
		if err != nil {
			return nil, fmt.Errorf("line %d: liked: %w", table.line, err)
		}
		kind := strings.ToLower(table.get(row, "interaction_type"))
		in := Interaction{
			UserID:          table.get(row, "user_id"),
			POIID:           table.get(row, "poi_id"),
			Liked:           liked || kind == InteractionLiked,
			InteractionType: kind,
		}
		if raw := table.get(row, "timestamp"); raw != "" {
			if in.Timestamp, err = parseHistoryTime(raw); err != nil {
				return nil, fmt.Errorf("line %d: %w", table.line, err)
			}
		}
		out = append(out, in)
	}
	return out, nil
}

func parseHistoryTime(raw string) (time.Time, error) {
	for _, layout := range historyTimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// SeedFiles names the CSV files Seed loads. Empty paths are skipped.
type SeedFiles struct {
	POIs    string
	Users   string
	History string
}

// Seed loads the given CSV files into the store.
//
//nolint:gocritic // SeedFiles is a small value type
func (s *Store) Seed(ctx context.Context, files SeedFiles, defaultDuration float64) error {
	if files.POIs != "" {
		pois, err := parseFile(files.POIs, func(r io.Reader) ([]planner.POI, error) {
			return ParsePOIsCSV(r, defaultDuration)
		})
		if err != nil {
			return err
		}
		if err := s.PutPOIs(ctx, pois); err != nil {
			return fmt.Errorf("store POIs: %w", err)
		}
		s.logger.Info().Str("file", files.POIs).Int("count", len(pois)).Msg("Seeded POI catalog")
	}

	if files.Users != "" {
		users, err := parseFile(files.Users, ParseUsersCSV)
		if err != nil {
			return err
		}
		for i := range users {
			if err := s.PutUser(ctx, &users[i]); err != nil {
				return fmt.Errorf("store user %s: %w", users[i].UserID, err)
			}
		}
		s.logger.Info().Str("file", files.Users).Int("count", len(users)).Msg("Seeded users")
	}

	if files.History != "" {
		history, err := parseFile(files.History, ParseHistoryCSV)
		if err != nil {
			return err
		}
		if err := s.RecordInteractions(ctx, history); err != nil {
			return fmt.Errorf("store history: %w", err)
		}
		s.logger.Info().Str("file", files.History).Int("count", len(history)).Msg("Seeded interaction history")
	}
	return nil
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
