package syncer

import (
	"github.com/sirupsen/logrus"

	"github.com/shoploc/shoploc/internal/catalog"
	"github.com/shoploc/shoploc/internal/retry"
	"github.com/shoploc/shoploc/model"
)

// Tick advances the full catalog crawl of one resource type by a
// single page: fetch the page after the checkpoint cursor, mirror its
// translations, then persist the new checkpoint. Persisting the
// checkpoint last keeps an interrupted crawl resumable from the last
// completed page.
//
// A page fetch that exhausts its retry budget makes the tick a no-op;
// the next tick simply tries the same page again.
func (s *Syncer) Tick(process *model.SyncProcess) error {
	logger := s.logger.WithFields(logrus.Fields{
		"shop": process.Shop,
		"type": process.ResourceType,
	})

	var page *catalog.TranslatableResourcePage
	ok := retry.Do(s.attempts, func() error {
		result, err := s.catalog.ListTranslatableIDs(process.ResourceType, process.Cursor, s.pageSize)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	if !ok {
		logger.Warn("giving up fetching crawl page; will retry on a later tick")
		return nil
	}

	if len(page.Resources) > 0 {
		gids := make([]string, 0, len(page.Resources))
		for _, resource := range page.Resources {
			gids = append(gids, resource.ResourceID)
		}

		contexts, ok := s.localeContexts()
		if !ok {
			return nil
		}

		for _, context := range contexts {
			var nodes []catalog.ResourceTranslations
			ok = retry.Do(s.attempts, func() error {
				result, err := s.catalog.GetTranslations(gids, context.Locale, context.MarketID)
				if err != nil {
					return err
				}
				nodes = result
				return nil
			})
			if !ok {
				logger.WithField("locale", context.Locale).Warn("giving up fetching translations for crawl page")
				continue
			}

			err := s.store.UpsertTranslations(flatten(process.Shop, "", context, nodes))
			if err != nil {
				return err
			}
		}
	}

	process.Cursor = page.EndCursor
	process.HasNext = page.HasNextPage
	err := s.store.UpsertSyncProcess(process)
	if err != nil {
		return err
	}

	if !process.HasNext {
		logger.Info("Catalog crawl complete")
	}

	return nil
}
