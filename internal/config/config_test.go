package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envDBPath, "")

	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:8000", c.HTTPAddr)
	assert.Equal(t, "127.0.0.1:50051", c.GRPCAddr)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, "vault.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 12*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, []string{"http://localhost:8000", "http://127.0.0.1:8000"}, c.AllowedOrigins)
	assert.False(t, c.TrustProxyHeaders)
	assert.Equal(t, 10, c.LoginRatePerMinute)
	assert.Equal(t, 5, c.LoginBurst)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Empty(t, c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, 30*time.Second, c.ClipboardClearAfter)
}

func TestLoadDefaults_DBPathEnv(t *testing.T) {
	t.Setenv(envDBPath, "/var/lib/passvault/vault.db")

	var c Config
	c.LoadDefaults()
	assert.Equal(t, "/var/lib/passvault/vault.db", c.DatabaseDSN)
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"passvault"}
	t.Setenv(envDBPath, "")

	c := LoadConfig()
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}
