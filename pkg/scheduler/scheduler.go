// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scheduler periodically reloads the recommendation model so a
// long-running host process picks up freshly built artifacts without a
// restart.
package scheduler

import (
	"time"

	"go.uber.org/zap"
)

// Reloader re-reads the model store. Satisfied by
// *recommend.Recommender.
type Reloader interface {
	Reload() error
}

// Scheduler handles periodic model reload operations
type Scheduler struct {
	reloader Reloader
	interval time.Duration
	log      *zap.Logger
	stopChan chan bool
}

// NewScheduler creates a new scheduler
func NewScheduler(reloader Reloader, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		reloader: reloader,
		interval: interval,
		log:      log,
		stopChan: make(chan bool),
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.reload()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.stopChan <- true
}

// reload performs a single reload pass
func (s *Scheduler) reload() {
	if err := s.reloader.Reload(); err != nil {
		s.log.Warn("scheduled model reload failed", zap.Error(err))
	}
}
