// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// fileConfig mirrors [StructuredConfig] for JSON and YAML config files.
// Durations accept both "1h" strings and integer nanoseconds.
type fileConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration    Duration `json:"token_duration" yaml:"token_duration"`
		RememberDuration Duration `json:"remember_duration" yaml:"remember_duration"`
		Version          string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Security struct {
		FastHashCost bool `json:"fast_hash_cost" yaml:"fast_hash_cost"`
		HashCost     int  `json:"hash_cost" yaml:"hash_cost"`
	} `json:"security" yaml:"security"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" yaml:"driver"`
			DSN    string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		LoginRateLimit float64  `json:"login_rate_limit" yaml:"login_rate_limit"`
		LoginRateBurst int      `json:"login_rate_burst" yaml:"login_rate_burst"`
		SecureCookies  bool     `json:"secure_cookies" yaml:"secure_cookies"`
	} `json:"server" yaml:"server"`

	Events struct {
		NATSURL string `json:"nats_url" yaml:"nats_url"`
	} `json:"events" yaml:"events"`

	Workers struct {
		CounterAuditSchedule string `json:"counter_audit_schedule" yaml:"counter_audit_schedule"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a config file. Files ending in .yaml or .yml are decoded
// as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:     f.App.TokenSignKey,
			TokenIssuer:      f.App.TokenIssuer,
			TokenDuration:    time.Duration(f.App.TokenDuration),
			RememberDuration: time.Duration(f.App.RememberDuration),
			Version:          f.App.Version,
		},
		Security: Security{
			FastHashCost: f.Security.FastHashCost,
			HashCost:     f.Security.HashCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: f.Storage.DB.Driver,
				DSN:    f.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			GRPCAddress:    f.Server.GRPCAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
			LoginRateLimit: f.Server.LoginRateLimit,
			LoginRateBurst: f.Server.LoginRateBurst,
			SecureCookies:  f.Server.SecureCookies,
		},
		Events:  Events{NATSURL: f.Events.NATSURL},
		Workers: Workers{CounterAuditSchedule: f.Workers.CounterAuditSchedule},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling
// from strings like "1h", "30s" as well as integer nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return d.set(v)
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (d *Duration) UnmarshalYAML(b []byte) error {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return err
	}

	return d.set(v)
}

// MarshalJSON implements [json.Marshaler].
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case nil:
		*d = 0
	case float64:
		*d = Duration(time.Duration(value))
	case int:
		*d = Duration(time.Duration(value))
	case int64:
		*d = Duration(time.Duration(value))
	case uint64:
		*d = Duration(time.Duration(value))
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
	default:
		return fmt.Errorf("invalid duration %v", v)
	}

	return nil
}
