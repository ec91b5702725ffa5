// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// bcrypt accepts costs in this range.
const (
	minHashCost = 4
	maxHashCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. All violations are
// reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs))
	}

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs))
	}

	if cfg.App.TokenDuration <= 0 || cfg.App.RememberDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs))
	}

	if cost := cfg.Security.HashCost; cost != 0 && (cost < minHashCost || cost > maxHashCost) {
		errs = append(errs, fmt.Errorf("%w: hash cost %d out of range %d..%d", ErrInvalidSecurityConfigs, cost, minHashCost, maxHashCost))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs))
	}

	if cfg.Server.LoginRateLimit < 0 || cfg.Server.LoginRateBurst < 0 {
		errs = append(errs, fmt.Errorf("%w: negative rate limit", ErrInvalidServerConfigs))
	}

	if cfg.Events.NATSURL != "" {
		if _, err := url.Parse(cfg.Events.NATSURL); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidEventsConfigs, err))
		}
	}

	if schedule := cfg.Workers.CounterAuditSchedule; schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidWorkersConfigs, err))
		}
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	address := cfg.Adapter.HTTPAddress
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	if _, err := url.ParseRequestURI(address); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
	}

	return nil
}
