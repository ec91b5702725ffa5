// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/crypto"
	"github.com/MKhiriev/go-social-graph/internal/events"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/store"
)

// Services holds the validated service chain handed to the transports.
type Services struct {
	AuthService    AuthService
	UserService    UserService
	FollowService  FollowService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, publisher events.Publisher, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	credentials := crypto.NewDigester(cfg.Security)

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(NewAuthService(storages, credentials, cfg.App, logger)),
		UserService:    NewUserValidationService().Wrap(NewUserService(storages, credentials, logger)),
		FollowService:  NewFollowValidationService().Wrap(NewFollowService(storages, publisher, logger)),
		AppInfoService: appInfo,
	}, nil
}
