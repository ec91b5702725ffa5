// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/handler"
	"github.com/MKhiriev/go-social-graph/internal/logger"
)

// shutdownTimeout bounds the graceful stop of all transports.
const shutdownTimeout = 15 * time.Second

// Servers runs the enabled HTTP and gRPC transports together.
type Servers struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

// NewServer binds a listener for every transport that has a handler. A bind
// failure closes the listeners opened so far.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (*Servers, error) {
	logger.Info().Msg("creating new server...")
	servers := &Servers{logger: logger}

	if handlers.HTTP != nil {
		h, err := newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating HTTP server: %w", err)
		}
		servers.httpServer = h
	}
	if handlers.GRPC != nil {
		g, err := newGRPCServer(handlers.GRPC, cfg.GRPCAddress, logger)
		if err != nil {
			if servers.httpServer != nil {
				servers.httpServer.listener.Close()
			}
			return nil, fmt.Errorf("error creating gRPC server: %w", err)
		}
		servers.gRPCServer = g
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// Run serves every transport until ctx is cancelled or one of them fails,
// then shuts all of them down.
func (s *Servers) Run(ctx context.Context) error {
	running := s.servers()
	errCh := make(chan error, len(running))

	for _, srv := range running {
		go func() {
			errCh <- srv.RunServer()
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		if runErr != nil {
			s.logger.Err(runErr).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErrs []error
	for _, srv := range running {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			shutdownErrs = append(shutdownErrs, err)
		}
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return errors.Join(runErr, errors.Join(shutdownErrs...))
}

func (s *Servers) servers() []Server {
	var out []Server
	if s.httpServer != nil {
		out = append(out, s.httpServer)
	}
	if s.gRPCServer != nil {
		out = append(out, s.gRPCServer)
	}
	return out
}

// HTTPAddr returns the bound HTTP address, or "" when HTTP is disabled.
func (s *Servers) HTTPAddr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.listener.Addr().String()
}

// GRPCAddr returns the bound gRPC address, or "" when gRPC is disabled.
func (s *Servers) GRPCAddr() string {
	if s.gRPCServer == nil {
		return ""
	}
	return s.gRPCServer.gRPCNetListener.Addr().String()
}
