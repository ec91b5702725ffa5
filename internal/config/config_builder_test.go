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

// ── helpers ───────────────────────────────────────────────────────────────────

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/social"
	return cfg
}

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
	assert.Nil(t, b.defaults)
	assert.Nil(t, b.file)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_DefaultsFillMissingFields(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/social"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "go-social-graph", cfg.App.TokenIssuer)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, float64(5), cfg.Server.LoginRateLimit)
	assert.Equal(t, 10, cfg.Server.LoginRateBurst)
}

func TestBuild_LaterLayersOverrideEarlier(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.file = &StructuredConfig{App: App{Version: "file", TokenIssuer: "file-issuer"}}
	b.configs = append(b.configs,
		&StructuredConfig{
			App:     App{Version: "env", TokenSignKey: "secret"},
			Storage: Storage{DB: DB{DSN: "postgres://env/db"}},
		},
		&StructuredConfig{App: App{Version: "flags"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flags", cfg.App.Version)
	assert.Equal(t, "file-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "postgres://env/db", cfg.Storage.DB.DSN)
}

func TestBuild_ZeroValuesDoNotOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig(), &StructuredConfig{})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
}

// ── withFlags / withFile ──────────────────────────────────────────────────────

func TestWithFlags_InvalidFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFile_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withFile()
	assert.NoError(t, b.err)
	assert.Nil(t, b.file)
}

func TestWithFile_LastPathWins(t *testing.T) {
	first := writeTempFile(t, "first.json", `{"app":{"version":"first"}}`)
	second := writeTempFile(t, "second.yaml", "app:\n  version: second\n")

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{FilePath: first},
		&StructuredConfig{FilePath: second},
	)

	b.withFile()
	require.NoError(t, b.err)
	require.NotNil(t, b.file)
	assert.Equal(t, "second", b.file.App.Version)
}

func TestWithFile_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: filepath.Join(t.TempDir(), "missing.json")})

	b.withFile()
	assert.Error(t, b.err)
}

func TestWithFile_FileBelowEnvAndFlags(t *testing.T) {
	path := writeTempFile(t, "config.json", `{
		"app": {"token_sign_key": "file-secret", "version": "file"},
		"storage": {"db": {"driver": "sqlite3", "dsn": "file:social.db"}}
	}`)

	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "env"}, FilePath: path},
	)

	cfg, err := b.withFile().build()
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "file-secret", cfg.App.TokenSignKey)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "hash cost too low",
			mutate:  func(cfg *StructuredConfig) { cfg.Security.HashCost = 3 },
			wantErr: ErrInvalidSecurityConfigs,
		},
		{
			name:    "hash cost too high",
			mutate:  func(cfg *StructuredConfig) { cfg.Security.HashCost = 32 },
			wantErr: ErrInvalidSecurityConfigs,
		},
		{
			name:   "explicit hash cost",
			mutate: func(cfg *StructuredConfig) { cfg.Security.HashCost = 12 },
		},
		{
			name:    "empty http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "negative rate limit",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.LoginRateLimit = -1 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:   "cron descriptor schedule",
			mutate: func(cfg *StructuredConfig) { cfg.Workers.CounterAuditSchedule = "@every 1h" },
		},
		{
			name:   "five field schedule",
			mutate: func(cfg *StructuredConfig) { cfg.Workers.CounterAuditSchedule = "30 3 * * *" },
		},
		{
			name:    "broken schedule",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.CounterAuditSchedule = "every hour" },
			wantErr: ErrInvalidWorkersConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_Override(t *testing.T) {
	cfg := &ClientConfig{Adapter: ClientAdapter{HTTPAddress: "http://localhost:8080", RequestTimeout: time.Second}}

	require.NoError(t, cfg.Override("http://example.com:9000", 0))
	assert.Equal(t, "http://example.com:9000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)

	require.NoError(t, cfg.Override("127.0.0.1:9000", 5*time.Second))
	assert.Equal(t, "127.0.0.1:9000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)

	assert.ErrorIs(t, cfg.Override("not a url", 0), ErrInvalidAdapterConfigs)
}
