package supervisor

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/shoploc/shoploc/internal/syncer"
	"github.com/shoploc/shoploc/model"
)

type queueStore interface {
	NextPendingSync() (*model.SyncItem, error)
	MarkSyncDone(item *model.SyncItem) error
}

// QueueSupervisor drains the targeted resync queue, rebuilding one
// resource family at a time until no pending item remains.
type QueueSupervisor struct {
	logger   log.FieldLogger
	store    queueStore
	syncer   *syncer.Syncer
	interval time.Duration
}

// NewQueueSupervisor returns a QueueSupervisor prepared with the
// needed metadata to operate.
func NewQueueSupervisor(store queueStore, s *syncer.Syncer, logger log.FieldLogger, interval time.Duration) *QueueSupervisor {
	return &QueueSupervisor{
		logger:   logger.WithField("queue-supervisor", model.NewID()),
		store:    store,
		syncer:   s,
		interval: interval,
	}
}

// Start runs the Supervisor's main routine on a new goroutine both
// periodically and forever.
func (s *QueueSupervisor) Start() {
	s.logger.Info("Queue supervisor started")
	go func() {
		for {
			s.supervise()
			time.Sleep(s.interval)
		}
	}()
}

// supervise works through the pending queue serially. An item whose
// rebuild fails stays pending and is retried on the next pass.
func (s *QueueSupervisor) supervise() {
	for {
		item, err := s.store.NextPendingSync()
		if err != nil {
			s.logger.WithError(err).Error("Failed to query database for pending resyncs")
			return
		}
		if item == nil {
			return
		}

		logger := s.logger.WithFields(log.Fields{
			"shop":     item.Shop,
			"type":     item.ResourceType,
			"resource": item.ResourceID,
		})
		logger.Debug("Resyncing resource")

		err = s.syncer.RebuildResource(item.Shop, item.ResourceType, item.ResourceID)
		if err != nil {
			logger.WithError(err).Error("Failed to resync resource; leaving it queued")
			return
		}

		err = s.store.MarkSyncDone(item)
		if err != nil {
			logger.WithError(err).Error("Resync completed but couldn't be marked done; it may be repeated")
			return
		}

		logger.Info("Resync completed")
	}
}
