package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic corpus imports.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	importEntryID cron.EntryID
}

// NewScheduler creates a Scheduler. A zero importInterval registers no job.
func NewScheduler(
	eng *Engine,
	importInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if importInterval > 0 {
		id, err := c.AddFunc("@every "+importInterval.String(), s.runImport)
		if err != nil {
			return nil, err
		}
		s.importEntryID = id
	}

	return s, nil
}

// Start recovers stale runs and begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.engine.RecoverStaleImports(context.Background())
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextImport returns when the next scheduled import runs, or the zero time
// when imports are not scheduled or the scheduler is not started.
func (s *Scheduler) NextImport() time.Time {
	if s.importEntryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.importEntryID).Next
}

func (s *Scheduler) runImport() {
	ctx := context.Background()
	s.log.Info("scheduled import starting")
	if _, err := s.engine.RunImport(ctx); err != nil {
		if errors.Is(err, ErrImportInProgress) {
			s.log.Info("scheduled import skipped, another import is running")
			return
		}
		s.log.Error("scheduled import failed", "error", err)
	}
}
