// Package config loads application configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tradejournal/logging"
	"tradejournal/paper"
)

// Config is the complete application configuration.
type Config struct {
	Engine  paper.Config      `json:"engine" yaml:"engine"`
	Journal JournalConfig     `json:"journal" yaml:"journal"`
	Store   StoreConfig       `json:"store" yaml:"store"`
	Logging logging.LogConfig `json:"logging" yaml:"logging"`
}

// JournalConfig selects the trade-journal backend.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "sqlite", "csv", or "none"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// StoreConfig selects the record-store backend for account/order/position
// persistence.
type StoreConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "none"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns a runnable configuration: default engine parameters, no
// persistence, console logging.
func Default() *Config {
	return &Config{
		Engine:  paper.DefaultConfig(),
		Journal: JournalConfig{Type: "none"},
		Store:   StoreConfig{Type: "none"},
		Logging: logging.DefaultLogConfig(),
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. Missing engine
// fields fall back to defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config: %w (json fallback: %v)", err, jerr)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Engine.InitialBalance <= 0 {
		return fmt.Errorf("engine: initial_balance must be positive, got %v", c.Engine.InitialBalance)
	}
	if c.Engine.DefaultQuantity <= 0 {
		return fmt.Errorf("engine: default_quantity must be positive, got %v", c.Engine.DefaultQuantity)
	}
	if c.Engine.StopLossPercent < 0 || c.Engine.TakeProfitPercent < 0 {
		return fmt.Errorf("engine: SL/TP percents must not be negative")
	}

	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal: db_path required for sqlite")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal: trades_file and equity_file required for csv")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal: unknown type %q", c.Journal.Type)
	}

	switch c.Store.Type {
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store: db_path required for sqlite")
		}
	case "none", "":
	default:
		return fmt.Errorf("store: unknown type %q", c.Store.Type)
	}

	return nil
}
