// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidSecurityConfigs indicates an unusable digest cost.
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidServerConfigs indicates invalid listener or throttling
	// settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidEventsConfigs indicates a malformed NATS URL.
	ErrInvalidEventsConfigs = errors.New("invalid events configuration")
	// ErrInvalidWorkersConfigs indicates an unparsable cron schedule.
	ErrInvalidWorkersConfigs = errors.New("invalid workers configuration")
)
