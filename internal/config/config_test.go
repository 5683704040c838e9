package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/spendlog/internal/store"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvDataFile, "")
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvTheme, "")
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "$" || cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.DataFile() != store.DefaultDataFile {
		t.Fatalf("DataFile = %q, want %s", cfg.DataFile(), store.DefaultDataFile)
	}
	if Exists() {
		t.Fatal("Exists reported a config file in an empty dir")
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.General.DataFile = "/data/spend.json"
	cfg.General.Currency = "€"
	cfg.Appearance.Theme = "tokyo-night"
	budget := 500.0
	cfg.Budget.Monthly = &budget

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "spendlog", "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DataFile() != "/data/spend.json" || got.General.Currency != "€" || got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Budget.Monthly == nil || *got.Budget.Monthly != 500 {
		t.Fatalf("budget = %v, want 500", got.Budget.Monthly)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	if err := Save(DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvDataFile, "env.json")
	t.Setenv(EnvCurrency, "£")
	t.Setenv(EnvTheme, "terminal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile() != "env.json" || cfg.General.Currency != "£" || cfg.Appearance.Theme != "terminal" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "solarized"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown theme accepted")
	}

	cfg = DefaultConfig()
	cfg.General.Currency = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty currency accepted")
	}

	cfg = DefaultConfig()
	negative := -1.0
	cfg.Budget.Monthly = &negative
	if err := cfg.Validate(); err == nil {
		t.Error("negative budget accepted")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, "spendlog"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "spendlog", "config.toml"), []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}
