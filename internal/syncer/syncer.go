// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package syncer mirrors remote catalog translations into the local
// store. The same flattening feeds both the full catalog crawl and
// targeted single-resource resyncs, so rows look identical no matter
// which path produced them.
package syncer

import (
	"github.com/sirupsen/logrus"

	"github.com/shoploc/shoploc/internal/catalog"
	"github.com/shoploc/shoploc/internal/retry"
	"github.com/shoploc/shoploc/model"
)

// DefaultPageSize is the number of translatable resources fetched per
// crawl tick.
const DefaultPageSize = 50

// Store is the slice of the SQL store the syncer writes through.
type Store interface {
	UpsertTranslations(translations []*model.Translation) error
	ClearTranslations(shop, resourceID string) error
	GetSyncProcess(shop, resourceType string) (*model.SyncProcess, error)
	UpsertSyncProcess(process *model.SyncProcess) error
}

// Catalog is the slice of the remote catalog client the syncer reads
// from.
type Catalog interface {
	ListLocales() ([]catalog.Locale, error)
	ListMarkets() ([]catalog.Market, error)
	GetResource(gid string) (*catalog.Resource, error)
	ListTranslatableIDs(resourceType, cursor string, pageSize int) (*catalog.TranslatableResourcePage, error)
	GetTranslations(gids []string, locale, marketID string) ([]catalog.ResourceTranslations, error)
}

// Syncer drives translation mirroring. Remote failures are absorbed by
// the bounded retry policy and turn the current step into a no-op;
// store failures propagate so the caller tries again on its next
// invocation.
type Syncer struct {
	store    Store
	catalog  Catalog
	logger   logrus.FieldLogger
	attempts int
	pageSize int
}

// NewSyncer returns a Syncer with the default retry budget and page
// size.
func NewSyncer(store Store, remote Catalog, logger logrus.FieldLogger) *Syncer {
	return &Syncer{
		store:    store,
		catalog:  remote,
		logger:   logger,
		attempts: retry.DefaultAttempts,
		pageSize: DefaultPageSize,
	}
}

// localeContext is one locale and market combination a rebuild has to
// cover. An empty MarketID is the default context without market
// overrides.
type localeContext struct {
	Locale   string
	MarketID string
	Market   string
}

// localeContexts enumerates every locale and market combination to
// fetch: each non-primary locale in the default context, plus each
// market locale in that market's context. The primary locale is
// skipped in the default context because the default locale's content
// is by definition untranslated.
func (s *Syncer) localeContexts() ([]localeContext, bool) {
	var locales []catalog.Locale
	ok := retry.Do(s.attempts, func() error {
		result, err := s.catalog.ListLocales()
		if err != nil {
			return err
		}
		locales = result
		return nil
	})
	if !ok {
		s.logger.Warn("giving up listing shop locales")
		return nil, false
	}

	var markets []catalog.Market
	ok = retry.Do(s.attempts, func() error {
		result, err := s.catalog.ListMarkets()
		if err != nil {
			return err
		}
		markets = result
		return nil
	})
	if !ok {
		s.logger.Warn("giving up listing markets")
		return nil, false
	}

	var contexts []localeContext
	for _, locale := range locales {
		if locale.Primary {
			continue
		}
		contexts = append(contexts, localeContext{Locale: locale.Locale})
	}
	for _, market := range markets {
		for _, locale := range market.Locales {
			contexts = append(contexts, localeContext{
				Locale:   locale,
				MarketID: market.ID,
				Market:   catalog.LegacyID(market.ID),
			})
		}
	}

	return contexts, true
}

// RebuildResource re-mirrors one resource family: blank the existing
// rows, enumerate the family's ids, then fetch and flatten the
// translations for every locale and market context.
//
// A resource that cannot be fetched after the retry budget leaves the
// family blanked, which is exactly how a remotely deleted resource
// should read locally: present, untranslated.
func (s *Syncer) RebuildResource(shop, resourceType, resourceID string) error {
	logger := s.logger.WithFields(logrus.Fields{
		"shop":     shop,
		"type":     resourceType,
		"resource": resourceID,
	})

	err := s.store.ClearTranslations(shop, resourceID)
	if err != nil {
		return err
	}

	gid := catalog.GID(resourceType, resourceID)
	var resource *catalog.Resource
	ok := retry.Do(s.attempts, func() error {
		result, err := s.catalog.GetResource(gid)
		if err != nil {
			return err
		}
		resource = result
		return nil
	})
	if !ok {
		logger.Warn("giving up fetching resource structure; leaving translations cleared")
		return nil
	}

	gids := []string{resource.ID}
	for _, option := range resource.Options {
		gids = append(gids, option.ID)
		for _, value := range option.Values {
			gids = append(gids, value.ID)
		}
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
			logger.WithField("locale", context.Locale).Warn("giving up fetching translations")
			continue
		}

		err = s.store.UpsertTranslations(flatten(shop, resourceID, context, nodes))
		if err != nil {
			return err
		}
	}

	logger.Debug("Rebuilt resource translations")
	return nil
}

// flatten merges the source content of each node with its translations
// by key. Content without a matching translation still produces a row,
// with an empty translation, so untranslated fields are searchable.
// When parentID is empty each node is its own parent.
func flatten(shop, parentID string, context localeContext, nodes []catalog.ResourceTranslations) []*model.Translation {
	var rows []*model.Translation
	for _, node := range nodes {
		resourceID := catalog.LegacyID(node.ResourceID)
		parent := parentID
		if parent == "" {
			parent = resourceID
		}

		translations := make(map[string]catalog.TranslationValue, len(node.Translations))
		for _, translation := range node.Translations {
			translations[translation.Key] = translation
		}

		for _, content := range node.Content {
			row := &model.Translation{
				Shop:         shop,
				ResourceType: catalog.ResourceTypeOfGID(node.ResourceID),
				ResourceID:   resourceID,
				ParentID:     parent,
				Field:        content.Key,
				Locale:       context.Locale,
				Market:       context.Market,
				Content:      content.Value,
			}
			if translation, found := translations[content.Key]; found {
				row.Translation = translation.Value
				row.UpdatedAt = translation.UpdatedAt
			}
			rows = append(rows, row)
		}
	}

	return rows
}
