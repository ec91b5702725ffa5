// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the jobs enabled in cfg. With nothing enabled Run
// returns immediately.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) (*Workers, error) {
	w := &Workers{}

	if cfg.CounterAuditSchedule != "" {
		audit, err := NewCounterAuditWorker(services.FollowService, cfg.CounterAuditSchedule, logger)
		if err != nil {
			return nil, err
		}
		w.workers = append(w.workers, audit)
	}

	return w, nil
}

// Run starts every worker and blocks until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
