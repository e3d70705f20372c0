// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package supervisor runs the background loops that keep the local
// translation mirror converging on the remote catalog: one loop
// advancing full catalog crawls, one draining the targeted resync
// queue.
package supervisor

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/shoploc/shoploc/internal/syncer"
	"github.com/shoploc/shoploc/model"
)

type crawlStore interface {
	ListInProgressSyncProcesses() ([]*model.SyncProcess, error)
}

// CrawlSupervisor advances every in-progress catalog crawl by one page
// per pass. There is exactly one of these per server, which is what
// guarantees at most one crawl tick in flight per resource type.
type CrawlSupervisor struct {
	logger   log.FieldLogger
	store    crawlStore
	syncer   *syncer.Syncer
	interval time.Duration
}

// NewCrawlSupervisor returns a CrawlSupervisor prepared with the
// needed metadata to operate.
func NewCrawlSupervisor(store crawlStore, s *syncer.Syncer, logger log.FieldLogger, interval time.Duration) *CrawlSupervisor {
	return &CrawlSupervisor{
		logger:   logger.WithField("crawl-supervisor", model.NewID()),
		store:    store,
		syncer:   s,
		interval: interval,
	}
}

// Start runs the Supervisor's main routine on a new goroutine both
// periodically and forever.
func (s *CrawlSupervisor) Start() {
	s.logger.Info("Crawl supervisor started")
	go func() {
		for {
			s.supervise()
			time.Sleep(s.interval)
		}
	}()
}

// supervise queries the database for crawls with pages left and
// advances each by a single page.
func (s *CrawlSupervisor) supervise() {
	processes, err := s.store.ListInProgressSyncProcesses()
	if err != nil {
		s.logger.WithError(err).Error("Failed to query database for in-progress crawls")
		return
	}

	for _, process := range processes {
		err = s.syncer.Tick(process)
		if err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"shop": process.Shop,
				"type": process.ResourceType,
			}).Error("Failed to advance catalog crawl")
		}
	}
}
