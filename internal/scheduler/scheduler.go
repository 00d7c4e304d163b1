// Package scheduler runs periodic maintenance jobs with robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPruneSpec runs session pruning hourly.
const DefaultPruneSpec = "@every 1h"

// SessionPruner deletes sessions idle for longer than maxIdle.
type SessionPruner interface {
	PruneSessions(ctx context.Context, maxIdle time.Duration) (int64, error)
}

// Scheduler wraps robfig/cron and owns the session pruning job.
type Scheduler struct {
	cron    *cron.Cron
	pruner  SessionPruner
	maxIdle time.Duration
	spec    string
}

// New creates a Scheduler that prunes sessions idle longer than maxIdle on spec.
// An empty spec uses DefaultPruneSpec.
func New(pruner SessionPruner, maxIdle time.Duration, spec string) *Scheduler {
	if spec == "" {
		spec = DefaultPruneSpec
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		pruner:  pruner,
		maxIdle: maxIdle,
		spec:    spec,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

// RunOnce prunes idle sessions immediately and returns how many were removed.
func (s *Scheduler) RunOnce(ctx context.Context) int64 {
	removed, err := s.pruner.PruneSessions(ctx, s.maxIdle)
	if err != nil {
		log.Printf("[scheduler] PruneSessions error: %v", err)
		return 0
	}
	if removed > 0 {
		log.Printf("[scheduler] Pruned %d idle session(s)", removed)
	}
	return removed
}
