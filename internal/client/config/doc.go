// Package config loads runtime configuration for the job tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the job tracker API
//	-f string   path of the local session database
//	-t int      request timeout (seconds)
//	-r float    page fetches per second allowed for "import"
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "session_db": "jobtracker.db",
//	  "request_timeout": "10s",
//	  "scrape_rate_per_second": 1
//	}
package config
