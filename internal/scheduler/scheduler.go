package scheduler

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler owns the single process-wide cron timer. It produces the
// per-minute automation tick and the maintenance purge; both jobs only
// enqueue work, the task queue workers do the actual processing.
type Scheduler struct {
	cron      *cron.Cron
	jobMap    map[string]cron.EntryID
	jobMapMux sync.RWMutex
}

// NewScheduler creates a scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		jobMap: make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("cron scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("cron scheduler stopped")
}

// AddJob registers a named cron job. Re-registering a name replaces
// the previous job.
func (s *Scheduler) AddJob(name, spec string, fn func()) error {
	entryID, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return err
	}

	s.jobMapMux.Lock()
	if previous, exists := s.jobMap[name]; exists {
		s.cron.Remove(previous)
	}
	s.jobMap[name] = entryID
	s.jobMapMux.Unlock()

	log.Info().Str("job", name).Str("spec", spec).Msg("scheduled cron job")
	return nil
}

// RemoveJob unregisters a named job
func (s *Scheduler) RemoveJob(name string) {
	s.jobMapMux.Lock()
	defer s.jobMapMux.Unlock()

	if entryID, exists := s.jobMap[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobMap, name)
		log.Info().Str("job", name).Msg("removed cron job")
	}
}

// JobCount returns the number of registered jobs
func (s *Scheduler) JobCount() int {
	s.jobMapMux.RLock()
	defer s.jobMapMux.RUnlock()
	return len(s.jobMap)
}
