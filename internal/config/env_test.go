// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY":    "jwt_secret",
		"APP_TOKEN_ISSUER":      "test_issuer",
		"APP_TOKEN_DURATION":    "1h",
		"APP_REMEMBER_DURATION": "720h",
		"APP_VERSION":           "1.2.3",

		"SECURITY_FAST_HASH_COST": "true",
		"SECURITY_HASH_COST":      "12",

		"STORAGE_DB_DRIVER":       "sqlite3",
		"STORAGE_DB_DATABASE_URI": "file:social.db",

		"SERVER_ADDRESS":          "localhost:8080",
		"SERVER_GRPC_ADDRESS":     "localhost:9090",
		"SERVER_REQUEST_TIMEOUT":  "30s",
		"SERVER_LOGIN_RATE_LIMIT": "2.5",
		"SERVER_LOGIN_RATE_BURST": "4",
		"SERVER_SECURE_COOKIES":   "true",

		"EVENTS_NATS_URL":                "nats://localhost:4222",
		"WORKERS_COUNTER_AUDIT_SCHEDULE": "@every 1h",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.FilePath)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 720*time.Hour, cfg.App.RememberDuration)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.True(t, cfg.Security.FastHashCost)
	assert.Equal(t, 12, cfg.Security.HashCost)

	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:social.db", cfg.Storage.DB.DSN)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2.5, cfg.Server.LoginRateLimit)
	assert.Equal(t, 4, cfg.Server.LoginRateBurst)
	assert.True(t, cfg.Server.SecureCookies)

	assert.Equal(t, "nats://localhost:4222", cfg.Events.NATSURL)
	assert.Equal(t, "@every 1h", cfg.Workers.CounterAuditSchedule)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "forever")

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

func TestParseEnv_LoadsDotEnvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_TOKEN_ISSUER=dotenv\nAPP_VERSION=dotenv\n"), 0o600))

	prev := dotEnvFile
	dotEnvFile = path
	t.Cleanup(func() { dotEnvFile = prev })

	t.Setenv("APP_VERSION", "process")
	// register APP_TOKEN_ISSUER for restore, then clear it so the .env value applies
	t.Setenv("APP_TOKEN_ISSUER", "")
	require.NoError(t, os.Unsetenv("APP_TOKEN_ISSUER"))

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "dotenv", cfg.App.TokenIssuer)
	assert.Equal(t, "process", cfg.App.Version)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.NoError(t, loadDotEnv(""))
}

func TestGetClientConfig_Defaults(t *testing.T) {
	prev := dotEnvFile
	dotEnvFile = ""
	t.Cleanup(func() { dotEnvFile = prev })

	t.Setenv("ADAPTER_ADDRESS", "")
	require.NoError(t, os.Unsetenv("ADAPTER_ADDRESS"))
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "3s")

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
}
