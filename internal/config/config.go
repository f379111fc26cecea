// Package config handles the flowcast TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"flowcast/internal/forecast"
	"flowcast/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all flowcast configuration.
type Config struct {
	General   GeneralConfig               `toml:"general"`
	Scenarios map[string]ScenarioOverride `toml:"scenarios,omitempty"`
}

// GeneralConfig holds the default forecast inputs.
type GeneralConfig struct {
	DataFile       string  `toml:"data_file,omitempty"`
	OpeningBalance float64 `toml:"opening_balance"`
	Threshold      float64 `toml:"threshold"`
}

// ScenarioOverride lets users tune the multipliers of a named scenario.
// Unset fields keep the built-in value.
type ScenarioOverride struct {
	RevenueMult    *float64 `toml:"revenue_mult,omitempty"`
	CollectionMult *float64 `toml:"collection_mult,omitempty"`
	ExpenseMult    *float64 `toml:"expense_mult,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			OpeningBalance: 500000,
			Threshold:      50000,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "flowcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "flowcast")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ResolveMultipliers returns the multipliers for a named scenario with any
// configured overrides applied. The built-in table stays fixed; overrides
// produce an ad-hoc multiplier set, the same mechanism sensitivity runs use.
func ResolveMultipliers(cfg Config, name model.Scenario) (model.ScenarioMultipliers, error) {
	mult, err := forecast.MultipliersFor(name)
	if err != nil {
		return model.ScenarioMultipliers{}, err
	}

	if o, ok := cfg.Scenarios[string(name)]; ok {
		if o.RevenueMult != nil {
			mult.Revenue = *o.RevenueMult
		}
		if o.CollectionMult != nil {
			mult.Collection = *o.CollectionMult
		}
		if o.ExpenseMult != nil {
			mult.Expense = *o.ExpenseMult
		}
	}
	return mult, nil
}
