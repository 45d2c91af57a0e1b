// Package config loads runtime configuration from the environment and
// indicator-set declarations from YAML files. The core stays stateless:
// everything here is resolved by the calling layer and passed down as
// explicit parameters.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"equity-navigator/internal/indicator"
)

// Config holds all application configuration loaded from environment
// variables, prefixed CHARTCALC_ (e.g. CHARTCALC_WORKERS=8).
type Config struct {
	Workers     int    `envconfig:"WORKERS" default:"4"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("chartcalc", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IndicatorSet is a YAML-declared list of indicators to compute, e.g.:
//
//	indicators:
//	  - type: SMA
//	    window: 20
//	  - type: MACD
//	  - type: FORMULA
//	    name: MOMENTUM
//	    formula: Close.diff().rolling(10).mean()
type IndicatorSet struct {
	Indicators []indicator.Config `yaml:"indicators"`
}

// LoadIndicatorSet parses an indicator-set file.
func LoadIndicatorSet(path string) (*IndicatorSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read indicator set: %w", err)
	}
	var set IndicatorSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("config: parse indicator set %s: %w", path, err)
	}
	if len(set.Indicators) == 0 {
		return nil, fmt.Errorf("config: indicator set %s declares no indicators", path)
	}
	return &set, nil
}
