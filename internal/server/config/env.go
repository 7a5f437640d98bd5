package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Test seams.
var (
	loadDotEnv = func() error { return godotenv.Load() }
	lookupEnv  = os.LookupEnv
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win over the file.
//
// Recognised variables:
//
//	PORT               HTTP port, bound on all interfaces (":" + PORT)
//	GRPC_ADDR          gRPC health probe address
//	DATABASE_URL       PostgreSQL DSN
//	JWT_SECRET         token signing secret
//	CORS_ORIGINS       comma separated list of allowed origins
//	SHUTDOWN_TIMEOUT   Go duration, e.g. "15s"
//	DB_MAX_OPEN_CONNS  pool size
//	LOG_FORMAT         "json" or "console"
//
// Malformed numeric or duration values are ignored and the previous value kept.
func parseEnv(cfg *Config) {
	_ = loadDotEnv()

	if v, ok := lookupEnv("PORT"); ok && v != "" {
		cfg.EndpointAddrHTTP = ":" + v
	}
	if v, ok := lookupEnv("GRPC_ADDR"); ok {
		cfg.EndpointAddrGRPC = v
	}
	if v, ok := lookupEnv("DATABASE_URL"); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookupEnv("JWT_SECRET"); ok && v != "" {
		cfg.SecretKey = v
	}
	if v, ok := lookupEnv("CORS_ORIGINS"); ok && v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := lookupEnv("SHUTDOWN_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ShutdownTimeout = d
		}
	}
	if v, ok := lookupEnv("DB_MAX_OPEN_CONNS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DBMaxOpenConns = n
		}
	}
	if v, ok := lookupEnv("LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = v
	}
}
