package service

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the persisted analysis snapshot on a cron schedule, so
// a cold-starting consumer always finds a reasonably fresh snapshot even if
// no one has requested an analysis recently.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a scheduler that recomputes the snapshot for the given
// range mode per the cron spec. An empty spec disables scheduling and returns
// a no-op scheduler.
func NewScheduler(analysisService *AnalysisService, spec, mode string) (*Scheduler, error) {
	c := cron.New()

	if spec != "" {
		_, err := c.AddFunc(spec, func() {
			if err := analysisService.RefreshSnapshot(mode); err != nil {
				log.Printf("scheduled snapshot refresh failed: %v", err)
				return
			}
			log.Printf("refreshed analysis snapshot (range %s)", mode)
		})
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot cron spec %q: %w", spec, err)
		}
	}

	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler, waiting for a running job to complete.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
