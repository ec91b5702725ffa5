// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	defaultClientAddress = "http://localhost:8080"
	defaultClientTimeout = 10 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the server API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains the server address and timeout.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`
}

// GetClientConfig loads the client configuration from the environment (and
// a .env file when present) on top of the built-in defaults, then validates
// it. Command-line overrides are applied by the caller through
// [ClientConfig.Override].
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    defaultClientAddress,
			RequestTimeout: defaultClientTimeout,
		},
	}

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, cfg.validate()
}

// Override replaces the address and timeout with the non-zero arguments and
// re-validates the result.
func (cfg *ClientConfig) Override(address string, timeout time.Duration) error {
	if address != "" {
		cfg.Adapter.HTTPAddress = address
	}
	if timeout > 0 {
		cfg.Adapter.RequestTimeout = timeout
	}

	return cfg.validate()
}
