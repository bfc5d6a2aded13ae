package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"grocery-cost/core/types"
	"grocery-cost/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	if cfg.Defaults != want.Defaults {
		t.Errorf("Defaults = %+v, want %+v", cfg.Defaults, want.Defaults)
	}
	if cfg.Server.Address != ":8080" || cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Pricing.BufferPercent != BufferPercent {
		t.Errorf("BufferPercent = %d, want %d", cfg.Pricing.BufferPercent, BufferPercent)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "defaults": {"location": "Medellín", "headcount": 4, "meal_type": "cena"},
  "server": {"address": ":9090", "read_timeout": "30s"},
  "output": {"default_format": "json"}
}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Defaults.Location != "Medellín" || cfg.Defaults.Headcount != 4 {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Defaults.MealType != types.MealDinner {
		t.Errorf("MealType = %s, want dinner", cfg.Defaults.MealType)
	}
	if cfg.Server.Address != ":9090" || cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	// untouched keys keep their defaults
	if cfg.Server.WriteTimeout != 15*time.Second {
		t.Errorf("WriteTimeout = %s, want 15s", cfg.Server.WriteTimeout)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want json", cfg.Output.DefaultFormat)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GROCERY_DEFAULTS_HEADCOUNT", "6")
	t.Setenv("GROCERY_SERVER_ADDRESS", ":7000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Headcount != 6 {
		t.Errorf("Headcount = %d, want 6", cfg.Defaults.Headcount)
	}
	if cfg.Server.Address != ":7000" {
		t.Errorf("Address = %q, want :7000", cfg.Server.Address)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"defaults": `},
		{"zero headcount", `{"defaults": {"headcount": 0}}`},
		{"buffer changed", `{"pricing": {"buffer_percent": 15}}`},
		{"empty location", `{"defaults": {"location": "  "}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Defaults.Location = "Cali"
	cfg.Server.WriteTimeout = 45 * time.Second
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Defaults.Location != "Cali" {
		t.Errorf("Location = %q, want Cali", loaded.Defaults.Location)
	}
	if loaded.Server.WriteTimeout != 45*time.Second {
		t.Errorf("WriteTimeout = %s, want 45s", loaded.Server.WriteTimeout)
	}
}

func TestGlobalConfig(t *testing.T) {
	orig := Get()
	defer Set(orig)

	cfg := Default()
	cfg.Version = "test"
	Set(cfg)
	if Get().Version != "test" {
		t.Error("Set did not replace the global config")
	}
}
