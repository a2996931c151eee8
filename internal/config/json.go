package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/passvault/internal/flagx"
	"github.com/dmitrijs2005/passvault/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling; durations accept "30s" or
// integer nanoseconds.
type JsonConfig struct {
	HTTPAddr              string         `json:"http_addr"`
	GRPCAddr              string         `json:"grpc_addr"`
	DatabaseDriver        string         `json:"database_driver"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	AllowedOrigins        []string       `json:"allowed_origins"`
	TrustProxyHeaders     bool           `json:"trust_proxy_headers"`
	LoginRatePerMinute    int            `json:"login_rate_per_minute"`
	LoginBurst            int            `json:"login_burst"`
	LogLevel              string         `json:"log_level"`
	LogFormat             string         `json:"log_format"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	ClipboardClearAfter   timex.Duration `json:"clipboard_clear_after"`
}

// parseJson overlays the file named by -c/-config onto config. Keys absent
// from the file keep their current values. Unreadable or invalid files panic.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		HTTPAddr:              config.HTTPAddr,
		GRPCAddr:              config.GRPCAddr,
		DatabaseDriver:        config.DatabaseDriver,
		DatabaseDSN:           config.DatabaseDSN,
		SecretKey:             config.SecretKey,
		TokenValidityDuration: timex.Duration{Duration: config.TokenValidityDuration},
		AllowedOrigins:        config.AllowedOrigins,
		TrustProxyHeaders:     config.TrustProxyHeaders,
		LoginRatePerMinute:    config.LoginRatePerMinute,
		LoginBurst:            config.LoginBurst,
		LogLevel:              config.LogLevel,
		LogFormat:             config.LogFormat,
		S3RootUser:            config.S3RootUser,
		S3RootPassword:        config.S3RootPassword,
		S3Bucket:              config.S3Bucket,
		S3Region:              config.S3Region,
		S3BaseEndpoint:        config.S3BaseEndpoint,
		ClipboardClearAfter:   timex.Duration{Duration: config.ClipboardClearAfter},
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.GRPCAddr = c.GRPCAddr
	config.DatabaseDriver = c.DatabaseDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.AllowedOrigins = c.AllowedOrigins
	config.TrustProxyHeaders = c.TrustProxyHeaders
	config.LoginRatePerMinute = c.LoginRatePerMinute
	config.LoginBurst = c.LoginBurst
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.ClipboardClearAfter = c.ClipboardClearAfter.Duration
}
