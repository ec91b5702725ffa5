// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	defaultDriver           = DriverPostgres
	defaultHTTPAddress      = "localhost:8080"
	defaultTokenIssuer      = "go-social-graph"
	defaultTokenDuration    = time.Hour
	defaultRememberDuration = 20 * 365 * 24 * time.Hour
	defaultRequestTimeout   = 30 * time.Second
	defaultLoginRateLimit   = 5
	defaultLoginRateBurst   = 10
	defaultVersion          = "dev"
)

// configBuilder accumulates partial configs. build merges them in order,
// each one overriding the non-zero fields of the previous ones.
type configBuilder struct {
	defaults *StructuredConfig
	file     *StructuredConfig
	configs  []*StructuredConfig
	err      error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	layers := make([]*StructuredConfig, 0, len(b.configs)+2)
	if b.defaults != nil {
		layers = append(layers, b.defaults)
	}
	if b.file != nil {
		layers = append(layers, b.file)
	}
	layers = append(layers, b.configs...)

	config := new(StructuredConfig)
	for _, cfg := range layers {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.defaults = defaultConfig()
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

// withFile loads the config file named by the last env or flag layer that
// sets one. The file sits below env and flags in priority.
func (b *configBuilder) withFile() *configBuilder {
	var path string
	for _, cfg := range b.configs {
		if cfg.FilePath != "" {
			path = cfg.FilePath
		}
	}

	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.file = fileCfg
	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      defaultTokenIssuer,
			TokenDuration:    defaultTokenDuration,
			RememberDuration: defaultRememberDuration,
			Version:          defaultVersion,
		},
		Storage: Storage{
			DB: DB{Driver: defaultDriver},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			LoginRateLimit: defaultLoginRateLimit,
			LoginRateBurst: defaultLoginRateBurst,
		},
	}
}
