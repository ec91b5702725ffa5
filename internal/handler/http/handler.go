// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/service"
	"github.com/MKhiriev/go-social-graph/internal/utils"
)

type Handler struct {
	services *service.Services

	rememberDuration time.Duration
	secureCookies    bool
	requestTimeout   time.Duration

	sessionLimiter *ipRateLimiter
	traceIDs       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:         services,
		rememberDuration: cfg.App.RememberDuration,
		secureCookies:    cfg.Server.SecureCookies,
		requestTimeout:   cfg.Server.RequestTimeout,
		sessionLimiter:   newIPRateLimiter(cfg.Server.LoginRateLimit, cfg.Server.LoginRateBurst),
		traceIDs:         utils.NewUUIDGenerator(),
		logger:           logger,
	}
}
