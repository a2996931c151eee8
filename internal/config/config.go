// Package config assembles runtime settings for the passvault binaries:
// defaults first, then an optional JSON file (-c/-config), then flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings.
//
// An empty SecretKey makes the server sign session tokens with a random
// per-process key. An empty S3Bucket disables backups.
type Config struct {
	HTTPAddr              string
	GRPCAddr              string
	DatabaseDriver        string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	AllowedOrigins        []string
	TrustProxyHeaders     bool
	LoginRatePerMinute    int
	LoginBurst            int
	LogLevel              string
	LogFormat             string
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	ClipboardClearAfter   time.Duration
}

const envDBPath = "DB_PATH"

func (c *Config) LoadDefaults() {
	c.HTTPAddr = "127.0.0.1:8000"
	c.GRPCAddr = "127.0.0.1:50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "vault.db"
	if p := os.Getenv(envDBPath); p != "" {
		c.DatabaseDSN = p
	}
	c.SecretKey = ""
	c.TokenValidityDuration = 12 * time.Hour
	c.AllowedOrigins = []string{"http://localhost:8000", "http://127.0.0.1:8000"}
	c.TrustProxyHeaders = false
	c.LoginRatePerMinute = 10
	c.LoginBurst = 5
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.S3Region = "us-east-1"
	c.ClipboardClearAfter = 30 * time.Second
}

// LoadConfig applies defaults, the JSON file and flags, in that order.
// Malformed input panics, as it does for every layer.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
