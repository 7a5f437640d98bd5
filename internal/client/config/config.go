package config

import "time"

// Config holds runtime settings for the CLI.
type Config struct {
	ServerURL           string
	SessionDB           string
	RequestTimeout      time.Duration
	ScrapeRatePerSecond float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.SessionDB = "jobtracker.db"
	c.RequestTimeout = 10 * time.Second
	c.ScrapeRatePerSecond = 1
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
