package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
	"github.com/dmitrijs2005/jobtracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// keep the current value.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	SessionDB           *string         `json:"session_db"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	ScrapeRatePerSecond *float64        `json:"scrape_rate_per_second"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ScrapeRatePerSecond != nil {
		cfg.ScrapeRatePerSecond = *jc.ScrapeRatePerSecond
	}
}
