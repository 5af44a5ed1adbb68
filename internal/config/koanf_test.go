// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/wayfarer/internal/planner"
)

// isolateConfig points CONFIG_PATH at a missing file and moves into an
// empty directory so no stray config.yaml is picked up.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "absent.yaml"))
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Planner.TopN != 10 || cfg.Planner.TripDays != 3 || cfg.Planner.SlotsPerDay != 2 {
		t.Errorf("Planner = %+v", cfg.Planner)
	}
	if cfg.Planner.DefaultCeiling != "medium" || !cfg.Planner.EnforceDiversity {
		t.Errorf("Planner ceiling/diversity = %q/%v", cfg.Planner.DefaultCeiling, cfg.Planner.EnforceDiversity)
	}
	if cfg.Events.Driver != "gochannel" || cfg.Events.Topic != "itinerary.planned" {
		t.Errorf("Events = %+v", cfg.Events)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"STORAGE_PATH", "storage.path"},
		{"PLANNER_TOP_N", "planner.top_n"},
		{"planner_default_ceiling", "planner.default_ceiling"},
		{"NATS_URL", "events.nats_url"},
		{"LOG_LEVEL", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := isolateConfig(t)

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty", got)
	}

	local := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(local, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("findConfigFile() = %q, want config.yaml", got)
	}

	explicit := filepath.Join(dir, "explicit.yaml")
	if err := os.WriteFile(explicit, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, explicit)
	if got := findConfigFile(); got != explicit {
		t.Errorf("findConfigFile() = %q, want %q", got, explicit)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_IN_MEMORY", "true")
	t.Setenv("PLANNER_TOP_N", "5")
	t.Setenv("PLANNER_ENFORCE_DIVERSITY", "false")
	t.Setenv("PLANNER_DEFAULT_CEILING", "HIGH")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.Storage.InMemory {
		t.Error("Storage.InMemory = false, want true")
	}
	if cfg.Planner.TopN != 5 || cfg.Planner.EnforceDiversity {
		t.Errorf("Planner = %+v", cfg.Planner)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v, want 90s", cfg.Cache.TTL)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}

	defaults, err := cfg.PlannerDefaults()
	if err != nil {
		t.Fatalf("PlannerDefaults() error = %v", err)
	}
	if defaults.DefaultCeiling != planner.BudgetHigh || defaults.TopN != 5 {
		t.Errorf("PlannerDefaults() = %+v", defaults)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "wayfarer.yaml")
	content := `
server:
  port: 7000
  cors_origins:
    - https://planner.example.com
storage:
  path: /tmp/wayfarer-test
planner:
  slots_per_day: 3
events:
  driver: nats
  nats_url: nats://nats:4222
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7000 || cfg.Server.Addr() != "0.0.0.0:7000" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Planner.SlotsPerDay != 3 || cfg.Planner.TripDays != 3 {
		t.Errorf("Planner = %+v, want file value merged with defaults", cfg.Planner)
	}
	if cfg.Events.Driver != "nats" || cfg.Events.NATSURL != "nats://nats:4222" {
		t.Errorf("Events = %+v", cfg.Events)
	}
	if len(cfg.Server.CORSOrigins) != 1 {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "wayfarer.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want env value 7001", cfg.Server.Port)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"bad ceiling", map[string]string{"PLANNER_DEFAULT_CEILING": "luxury"}, "PLANNER_DEFAULT_CEILING"},
		{"zero top n", map[string]string{"PLANNER_TOP_N": "0"}, "PLANNER_TOP_N"},
		{"bad driver", map[string]string{"EVENTS_DRIVER": "kafka"}, "EVENTS_DRIVER"},
		{"bad nats url", map[string]string{"EVENTS_DRIVER": "nats", "NATS_URL": "http://nats:4222"}, "NATS_URL"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"rate limit window", map[string]string{"RATE_LIMIT_WINDOW": "10ms"}, "RATE_LIMIT_WINDOW"},
		{"missing storage path", map[string]string{"STORAGE_PATH": " "}, "STORAGE_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllSections(t *testing.T) {
	cfg := defaultConfig()
	cfg.Planner.TopN = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	for _, want := range []string{"PLANNER_TOP_N", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestEventsDisabledSkipsValidation(t *testing.T) {
	cfg := defaultConfig()
	cfg.Events.Enabled = false
	cfg.Events.Driver = "kafka"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil with events disabled", err)
	}
	if !cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = false for default origins")
	}
}
