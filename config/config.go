package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/analytics/rolling"
	"github.com/rustyeddy/analytics/series"
)

// Config is the complete analytics configuration. Validation fails fast
// here; the analytics packages assume validated parameters.
type Config struct {
	Account   AccountConfig   `json:"account" yaml:"account"`
	Rolling   RollingConfig   `json:"rolling" yaml:"rolling"`
	Bootstrap BootstrapConfig `json:"bootstrap" yaml:"bootstrap"`
	Pairs     PairsConfig     `json:"pairs" yaml:"pairs"`
	Streaks   StreaksConfig   `json:"streaks" yaml:"streaks"`
}

// AccountConfig describes the analyzed account window.
type AccountConfig struct {
	ID             string      `json:"id" yaml:"id"`
	InitialBalance float64     `json:"initial_balance" yaml:"initial_balance"`
	Start          series.Date `json:"start" yaml:"start"`
	End            series.Date `json:"end" yaml:"end"`
}

// RollingConfig parameterizes the windowed risk metrics. RiskFree is a
// per-period rate. The last window is the headline figure.
type RollingConfig struct {
	Frequency string               `json:"frequency" yaml:"frequency"`
	RiskFree  float64              `json:"risk_free" yaml:"risk_free"`
	Windows   []rolling.WindowSpec `json:"windows" yaml:"windows"`
}

// BootstrapConfig parameterizes the stationary-bootstrap simulator.
type BootstrapConfig struct {
	ContinuationProbability float64              `json:"continuation_probability" yaml:"continuation_probability"`
	Paths                   int                  `json:"paths" yaml:"paths"`
	Seed                    uint64               `json:"seed,omitempty" yaml:"seed,omitempty"`
	Horizons                []rolling.WindowSpec `json:"horizons" yaml:"horizons"`
	DrawdownThresholds      []float64            `json:"drawdown_thresholds" yaml:"drawdown_thresholds"`
	LossRunLengths          []int                `json:"loss_run_lengths" yaml:"loss_run_lengths"`
	RuinThresholdPct        float64              `json:"ruin_threshold_pct" yaml:"ruin_threshold_pct"`
}

// PairsConfig parameterizes the spread/cointegration analyzer.
type PairsConfig struct {
	Window       int     `json:"window" yaml:"window"`
	Significance float64 `json:"significance" yaml:"significance"`
}

// StreaksConfig parameterizes losing-streak detection.
type StreaksConfig struct {
	Threshold int `json:"threshold" yaml:"threshold"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.InitialBalance < 0 {
		return fmt.Errorf("account.initial_balance must not be negative")
	}
	if !c.Account.Start.IsZero() && !c.Account.End.IsZero() && c.Account.End.Before(c.Account.Start) {
		return fmt.Errorf("account.end precedes account.start")
	}
	if _, err := rolling.ParseFrequency(c.Rolling.Frequency); err != nil {
		return fmt.Errorf("rolling.frequency: %w", err)
	}
	for _, w := range c.Rolling.Windows {
		if w.Periods <= 0 {
			return fmt.Errorf("rolling window %q must have positive periods", w.Label)
		}
	}
	if c.Bootstrap.Paths <= 0 {
		return fmt.Errorf("bootstrap.paths must be positive")
	}
	if c.Bootstrap.ContinuationProbability < 0 || c.Bootstrap.ContinuationProbability > 1 {
		return fmt.Errorf("bootstrap.continuation_probability must be in [0,1]")
	}
	for _, h := range c.Bootstrap.Horizons {
		if h.Periods <= 0 {
			return fmt.Errorf("bootstrap horizon %q must have positive periods", h.Label)
		}
	}
	for _, th := range c.Bootstrap.DrawdownThresholds {
		if th <= 0 || th >= 1 {
			return fmt.Errorf("bootstrap drawdown threshold %v must be in (0,1)", th)
		}
	}
	for _, k := range c.Bootstrap.LossRunLengths {
		if k < 0 {
			return fmt.Errorf("bootstrap loss-run length %d must not be negative", k)
		}
	}
	if c.Bootstrap.RuinThresholdPct < 0 || c.Bootstrap.RuinThresholdPct >= 1 {
		return fmt.Errorf("bootstrap.ruin_threshold_pct must be in [0,1)")
	}
	if c.Pairs.Window < 2 {
		return fmt.Errorf("pairs.window must be at least 2")
	}
	if c.Pairs.Significance <= 0 || c.Pairs.Significance >= 1 {
		return fmt.Errorf("pairs.significance must be in (0,1)")
	}
	if c.Streaks.Threshold < 0 {
		return fmt.Errorf("streaks.threshold must not be negative")
	}
	return nil
}

// Frequency returns the parsed rolling frequency. Validate first.
func (c *Config) Frequency() rolling.Frequency {
	f, _ := rolling.ParseFrequency(c.Rolling.Frequency)
	return f
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "main",
			InitialBalance: 100000,
		},
		Rolling: RollingConfig{
			Frequency: "daily",
			Windows: []rolling.WindowSpec{
				{Periods: 30, Label: "30d"},
				{Periods: 90, Label: "90d"},
				{Periods: 365, Label: "1y"},
			},
		},
		Bootstrap: BootstrapConfig{
			ContinuationProbability: 0.9,
			Paths:                   2000,
			Horizons: []rolling.WindowSpec{
				{Periods: 30, Label: "30d"},
				{Periods: 90, Label: "90d"},
			},
			DrawdownThresholds: []float64{0.05, 0.10, 0.20},
			LossRunLengths:     []int{3, 5, 8},
			RuinThresholdPct:   0.25,
		},
		Pairs: PairsConfig{
			Window:       60,
			Significance: 0.05,
		},
		Streaks: StreaksConfig{
			Threshold: 4,
		},
	}
}
