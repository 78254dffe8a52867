// Package config loads the gateway's process-wide configuration once from
// the environment. The resulting Config is injected at startup and never
// mutated.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr          string // GATEWAY_ADDR, default ":8080"
	AllowedOrigin string // GATEWAY_ALLOWED_ORIGIN

	OdooURL    string // ODOO_URL, full /jsonrpc endpoint
	OdooDB     string // ODOO_DB
	OdooUID    int64  // ODOO_UID, numeric account that owns the API key
	OdooAPIKey string // ODOO_API_KEY

	SendFoxBaseURL string        // SENDFOX_API_BASE, default production
	SendFoxToken   string        // SENDFOX_API_TOKEN
	SourceListID   int64         // SENDFOX_SOURCE_LIST_ID
	DestListID     int64         // SENDFOX_DEST_LIST_ID
	MigrateBatch   int           // SENDFOX_BATCH_SIZE, default 15
	MigratePause   time.Duration // SENDFOX_BATCH_PAUSE_MS, default 100ms
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Addr:           envOr("GATEWAY_ADDR", ":8080"),
		AllowedOrigin:  envOr("GATEWAY_ALLOWED_ORIGIN", "https://members.golfph.com"),
		OdooURL:        os.Getenv("ODOO_URL"),
		OdooDB:         os.Getenv("ODOO_DB"),
		OdooUID:        envInt("ODOO_UID", 2),
		OdooAPIKey:     os.Getenv("ODOO_API_KEY"),
		SendFoxBaseURL: os.Getenv("SENDFOX_API_BASE"),
		SendFoxToken:   os.Getenv("SENDFOX_API_TOKEN"),
		SourceListID:   envInt("SENDFOX_SOURCE_LIST_ID", 0),
		DestListID:     envInt("SENDFOX_DEST_LIST_ID", 0),
		MigrateBatch:   int(envInt("SENDFOX_BATCH_SIZE", 15)),
		MigratePause:   time.Duration(envInt("SENDFOX_BATCH_PAUSE_MS", 100)) * time.Millisecond,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
