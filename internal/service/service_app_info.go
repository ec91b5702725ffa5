package service

import (
	"context"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/models"
)

const notAvailable = "N/A"

type appInfoService struct {
	buildInfo models.BuildInfo

	logger *logger.Logger
}

// NewAppInfoService requires a version. Missing build date or commit are
// reported as "N/A".
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		buildInfo: models.BuildInfo{
			Version: cfg.Version,
			Date:    valueOrNA(cfg.BuildDate),
			Commit:  valueOrNA(cfg.BuildCommit),
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.BuildInfo {
	return s.buildInfo
}

func valueOrNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
