package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
	"github.com/dmitrijs2005/jobtracker/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only keys present in
// the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	AllowedOrigins   []string        `json:"allowed_origins"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	DBMaxOpenConns   *int            `json:"db_max_open_conns"`
	LogFormat        *string         `json:"log_format"`
}

// parseJson loads the file named by -c/-config into config. Without the flag
// nothing happens. An unreadable file or invalid JSON panics, as a broken
// config file must stop startup.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.DBMaxOpenConns != nil {
		config.DBMaxOpenConns = *c.DBMaxOpenConns
	}
	if c.LogFormat != nil {
		config.LogFormat = *c.LogFormat
	}
}
