package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hooptools/capledger/internal/cba"
)

// Config is the yaml configuration for the ledger: the season's CBA
// figures, the refresh cadence, and the tracked teams.
type Config struct {
	Season struct {
		Year int `yaml:"year"`
	} `yaml:"season"`
	CBA     cba.Ruleset `yaml:"cba"`
	Refresh struct {
		Interval string `yaml:"interval"` // time.ParseDuration format, empty disables
	} `yaml:"refresh"`
	Teams []string `yaml:"teams"`
}

// RefreshInterval parses the configured sweep interval. A missing value
// disables the periodic refresher.
func (c *Config) RefreshInterval() (time.Duration, error) {
	if c.Refresh.Interval == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(c.Refresh.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid refresh interval %q: %w", c.Refresh.Interval, err)
	}
	return interval, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.CBA.Thresholds == (cba.Thresholds{}) {
		config.CBA.Thresholds = cba.DefaultThresholds()
	}
	if config.CBA.Amounts == (cba.ExceptionAmounts{}) {
		config.CBA.Amounts = cba.DefaultExceptionAmounts()
	}
	if err := config.CBA.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid threshold table: %w", err)
	}
	return &config, nil
}

func defaultConfig() *Config {
	config := &Config{CBA: cba.DefaultRuleset()}
	config.Season.Year = time.Now().Year()
	config.Teams = []string{"Los Angeles Lakers", "Boston Celtics"}
	return config
}
