// Package config loads tracker configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skypos/internal/astro"
)

// Config represents the complete tracker configuration.
type Config struct {
	Site           SiteConfig    `yaml:"site"`
	Targets        []string      `yaml:"targets"`
	RefreshSeconds int           `yaml:"refresh_seconds"`
	Logging        LoggingConfig `yaml:"logging"`
}

// SiteConfig describes the observer location and civil clock.
type SiteConfig struct {
	Name           string  `yaml:"name"`
	LatDeg         float64 `yaml:"lat_deg"`
	LonDeg         float64 `yaml:"lon_deg"` // east positive
	UTCOffsetHours float64 `yaml:"utc_offset_hours"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is supplied:
// Greenwich, UT clock, a handful of bright northern targets.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name:   "Greenwich",
			LatDeg: 51.4769,
			LonDeg: 0.0,
		},
		Targets:        []string{"Vega", "Arcturus", "Sirius", "Polaris", "Capella"},
		RefreshSeconds: 5,
		Logging:        LoggingConfig{Level: "info"},
	}
}

// Load loads configuration from a YAML file and validates it.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the site against the core's coordinate domains.
func (c *Config) Validate() error {
	// MaxAltitude applies exactly the latitude domain check the core uses.
	if _, err := astro.MaxAltitude(0, c.Site.LatDeg); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if c.Site.LonDeg < -180 || c.Site.LonDeg > 360 {
		return &astro.DomainError{Arg: "Lon", Value: c.Site.LonDeg}
	}
	if c.Site.UTCOffsetHours < -14 || c.Site.UTCOffsetHours > 14 {
		return &astro.DomainError{Arg: "utc_offset", Value: c.Site.UTCOffsetHours}
	}
	if c.RefreshSeconds <= 0 {
		c.RefreshSeconds = 5
	}
	return nil
}

// RefreshInterval returns the refresh cadence as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// Observer converts the site into the core's observer value.
func (c *Config) Observer() astro.Observer {
	return astro.Observer{
		LatDeg:         c.Site.LatDeg,
		LonDeg:         c.Site.LonDeg,
		UTCOffsetHours: c.Site.UTCOffsetHours,
		Name:           c.Site.Name,
	}
}
