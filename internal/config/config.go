// Package config loads and saves the spendlog TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/theirongolddev/spendlog/internal/store"
)

// Environment variables that override the config file.
const (
	EnvDataFile = "SPENDLOG_FILE"
	EnvCurrency = "SPENDLOG_CURRENCY"
	EnvTheme    = "SPENDLOG_THEME"
)

// ThemeNames lists the accepted appearance.theme values.
var ThemeNames = []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}

// Config holds all spendlog configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataFile     string `toml:"data_file,omitempty"`
	Currency     string `toml:"currency"`
	DefaultDays  int    `toml:"default_days"`
	SummaryCache bool   `toml:"summary_cache"`
}

// BudgetConfig holds budget tracking settings.
type BudgetConfig struct {
	Monthly *float64 `toml:"monthly,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:     "$",
			DefaultDays:  30,
			SummaryCache: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.General.Validate(); err != nil {
		return fmt.Errorf("general: %w", err)
	}
	if err := c.Budget.Validate(); err != nil {
		return fmt.Errorf("budget: %w", err)
	}
	if err := c.Appearance.Validate(); err != nil {
		return fmt.Errorf("appearance: %w", err)
	}
	return nil
}

// Validate validates the general section.
func (c *GeneralConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Currency, validation.Required, validation.RuneLength(1, 4)),
		validation.Field(&c.DefaultDays, validation.Min(0), validation.Max(3650)),
	)
}

// Validate validates the budget section.
func (c *BudgetConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Monthly, validation.Min(0.0)),
	)
}

// Validate validates the appearance section.
func (c *AppearanceConfig) Validate() error {
	names := make([]interface{}, len(ThemeNames))
	for i, n := range ThemeNames {
		names[i] = n
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Theme, validation.Required, validation.In(names...)),
	)
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendlog")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied after the file.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDataFile)); v != "" {
		cfg.General.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCurrency)); v != "" {
		cfg.General.Currency = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Appearance.Theme = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataFile returns the data file path, falling back to expenses.json in the
// working directory.
func (c Config) DataFile() string {
	if c.General.DataFile != "" {
		return c.General.DataFile
	}
	return store.DefaultDataFile
}
