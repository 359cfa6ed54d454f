// Package common provides shared utilities for nestegg
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for nestegg
type Config struct {
	Environment string           `toml:"environment"`
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	Currency    CurrencyConfig   `toml:"currency"`
	FI          FIConfig         `toml:"fi"`
	Thresholds  ThresholdsConfig `toml:"thresholds"`
	Buckets     BucketsConfig    `toml:"buckets"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the file storage location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// CurrencyConfig holds the base currency and the exchange-rate table.
// There is exactly one rate table in the system; every conversion goes
// through it. Rates are multipliers relative to the base currency.
type CurrencyConfig struct {
	Base  string             `toml:"base"`
	Rates map[string]float64 `toml:"rates"`
}

// FIConfig holds financial-independence assumptions. WithdrawalRate is the
// assumed safe annual withdrawal fraction (e.g. 0.04); GrowthRate is the
// assumed annual growth used for the years-to-target projection.
type FIConfig struct {
	Target         float64 `toml:"target"`
	WithdrawalRate float64 `toml:"withdrawal_rate"`
	GrowthRate     float64 `toml:"growth_rate"`
}

// ThresholdsConfig holds the allocation health-check ceilings (max pct per
// risk category) and the hedge corrective target. The hedge rule alerts at
// HedgeMaxPct but corrects down to HedgeTargetPct, a hysteresis band
// carried over from the original rules; flagged for product confirmation.
type ThresholdsConfig struct {
	HedgeMaxPct    float64 `toml:"hedge_max_pct"`
	GrowthMaxPct   float64 `toml:"growth_max_pct"`
	CryptoMaxPct   float64 `toml:"crypto_max_pct"`
	HedgeTargetPct float64 `toml:"hedge_target_pct"`
}

// BucketsConfig holds per-bucket target percentages used for drift display.
type BucketsConfig struct {
	CoreTargetPct   float64 `toml:"core_target_pct"`
	GrowthTargetPct float64 `toml:"growth_target_pct"`
	CryptoTargetPct float64 `toml:"crypto_target_pct"`
	HedgeTargetPct  float64 `toml:"hedge_target_pct"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Currency: CurrencyConfig{
			Base: "USD",
			Rates: map[string]float64{
				"AUD": 1.52,
				"EUR": 0.92,
				"GBP": 0.79,
				"INR": 83.20,
				"JPY": 147.0,
			},
		},
		FI: FIConfig{
			Target:         1000000,
			WithdrawalRate: 0.04,
			GrowthRate:     0.07,
		},
		Thresholds: ThresholdsConfig{
			HedgeMaxPct:    25,
			GrowthMaxPct:   12,
			CryptoMaxPct:   20,
			HedgeTargetPct: 15,
		},
		Buckets: BucketsConfig{
			CoreTargetPct:   55,
			GrowthTargetPct: 10,
			CryptoTargetPct: 15,
			HedgeTargetPct:  20,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validateBaseCurrency(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("NESTEGG_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("NESTEGG_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("NESTEGG_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("NESTEGG_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("NESTEGG_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if base := os.Getenv("NESTEGG_BASE_CURRENCY"); base != "" {
		config.Currency.Base = strings.ToUpper(base)
	}

	if target := os.Getenv("NESTEGG_FI_TARGET"); target != "" {
		if t, err := strconv.ParseFloat(target, 64); err == nil && t > 0 {
			config.FI.Target = t
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// validateBaseCurrency upper-cases the base currency code and removes it
// from the rate table if present; the base always converts at 1:1.
func validateBaseCurrency(config *Config) {
	base := strings.ToUpper(strings.TrimSpace(config.Currency.Base))
	if base == "" {
		base = "USD"
	}
	config.Currency.Base = base
	delete(config.Currency.Rates, base)
}
