// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/service"
	"github.com/robfig/cron/v3"
)

// counterAuditTimeout bounds a single recount pass.
const counterAuditTimeout = 5 * time.Minute

// CounterAuditWorker periodically recomputes the denormalized follower and
// following counters from the follow edges and repairs any drift.
type CounterAuditWorker struct {
	follows  service.FollowService
	schedule cron.Schedule
	cron     *cron.Cron

	logger *logger.Logger
}

func NewCounterAuditWorker(follows service.FollowService, spec string, logger *logger.Logger) (*CounterAuditWorker, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("error parsing counter audit schedule %q: %w", spec, err)
	}

	return &CounterAuditWorker{
		follows:  follows,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger,
	}, nil
}

func (w *CounterAuditWorker) Run(ctx context.Context) {
	w.cron.Schedule(w.schedule, cron.FuncJob(func() { w.audit(ctx) }))
	w.cron.Start()
	w.logger.Info().Msg("counter audit worker started")

	<-ctx.Done()

	<-w.cron.Stop().Done()
	w.logger.Info().Msg("counter audit worker stopped")
}

// audit runs one recount pass and reports how many users were repaired.
func (w *CounterAuditWorker) audit(ctx context.Context) int64 {
	if ctx.Err() != nil {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, counterAuditTimeout)
	defer cancel()
	ctx = w.logger.WithContext(ctx)

	start := time.Now()
	fixed, err := w.follows.RecountCounters(ctx)
	if err != nil {
		w.logger.Err(err).Msg("counter audit failed")
		return 0
	}

	w.logger.Info().Int64("fixed", fixed).Dur("duration", time.Since(start)).Msg("counter audit finished")
	return fixed
}
