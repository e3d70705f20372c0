package syncer

import (
	"fmt"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoploc/shoploc/internal/catalog"
	"github.com/shoploc/shoploc/model"
)

type fakeStore struct {
	rows      map[string]*model.Translation
	processes map[string]*model.SyncProcess
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:      make(map[string]*model.Translation),
		processes: make(map[string]*model.SyncProcess),
	}
}

func rowKey(t *model.Translation) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", t.Shop, t.ResourceID, t.Field, t.Locale, t.Market)
}

func (s *fakeStore) UpsertTranslations(translations []*model.Translation) error {
	for _, t := range translations {
		copied := *t
		s.rows[rowKey(t)] = &copied
	}
	return nil
}

func (s *fakeStore) ClearTranslations(shop, resourceID string) error {
	for _, row := range s.rows {
		if row.Shop == shop && (row.ResourceID == resourceID || row.ParentID == resourceID) {
			row.Translation = ""
			row.UpdatedAt = ""
		}
	}
	return nil
}

func (s *fakeStore) GetSyncProcess(shop, resourceType string) (*model.SyncProcess, error) {
	process, found := s.processes[shop+"|"+resourceType]
	if !found {
		return nil, nil
	}
	copied := *process
	return &copied, nil
}

func (s *fakeStore) UpsertSyncProcess(process *model.SyncProcess) error {
	copied := *process
	s.processes[process.Shop+"|"+process.ResourceType] = &copied
	return nil
}

func (s *fakeStore) sortedRows() []*model.Translation {
	keys := make([]string, 0, len(s.rows))
	for key := range s.rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]*model.Translation, 0, len(keys))
	for _, key := range keys {
		copied := *s.rows[key]
		rows = append(rows, &copied)
	}
	return rows
}

type fakeCatalog struct {
	locales      []catalog.Locale
	markets      []catalog.Market
	pages        map[string]*catalog.TranslatableResourcePage
	resources    map[string]*catalog.Resource
	content      map[string][]catalog.TranslatableContent
	translations map[string]map[string][]catalog.TranslationValue

	listCursors   []string
	failResources bool
	failPages     bool
}

func (c *fakeCatalog) ListLocales() ([]catalog.Locale, error) {
	return c.locales, nil
}

func (c *fakeCatalog) ListMarkets() ([]catalog.Market, error) {
	return c.markets, nil
}

func (c *fakeCatalog) GetResource(gid string) (*catalog.Resource, error) {
	if c.failResources {
		return nil, errors.New("remote unavailable")
	}
	resource, found := c.resources[gid]
	if !found {
		return nil, errors.New("not found")
	}
	return resource, nil
}

func (c *fakeCatalog) ListTranslatableIDs(resourceType, cursor string, pageSize int) (*catalog.TranslatableResourcePage, error) {
	c.listCursors = append(c.listCursors, cursor)
	if c.failPages {
		return nil, errors.New("remote unavailable")
	}
	page, found := c.pages[cursor]
	if !found {
		return nil, errors.New("no such page")
	}
	return page, nil
}

func (c *fakeCatalog) GetTranslations(gids []string, locale, marketID string) ([]catalog.ResourceTranslations, error) {
	var nodes []catalog.ResourceTranslations
	for _, gid := range gids {
		content, found := c.content[gid]
		if !found {
			continue
		}
		node := catalog.ResourceTranslations{
			ResourceID: gid,
			Content:    content,
		}
		if byGid, found := c.translations[locale]; found {
			node.Translations = byGid[gid]
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func testLogger(tb testing.TB) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(testWriter{tb})
	logger.SetLevel(logrus.TraceLevel)
	return logger
}

type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(b []byte) (int, error) {
	w.tb.Log(string(b))
	return len(b), nil
}

const testShop = "example.myshopify.com"

func productFamilyCatalog() *fakeCatalog {
	return &fakeCatalog{
		locales: []catalog.Locale{
			{Locale: "en", Primary: true, Published: true},
			{Locale: "fr", Published: true},
			{Locale: "de", Published: true},
		},
		resources: map[string]*catalog.Resource{
			"gid://shopify/Product/1": {
				ID: "gid://shopify/Product/1",
				Options: []catalog.Option{
					{
						ID:     "gid://shopify/ProductOption/7",
						Values: []catalog.OptionValue{{ID: "gid://shopify/ProductOptionValue/11"}},
					},
				},
			},
		},
		content: map[string][]catalog.TranslatableContent{
			"gid://shopify/Product/1": {
				{Key: "title", Value: "Red shirt", Digest: "d1", Locale: "en"},
			},
			"gid://shopify/ProductOption/7": {
				{Key: "name", Value: "Size", Digest: "d2", Locale: "en"},
			},
			"gid://shopify/ProductOptionValue/11": {
				{Key: "name", Value: "XL", Digest: "d3", Locale: "en"},
			},
		},
		translations: map[string]map[string][]catalog.TranslationValue{
			"fr": {
				"gid://shopify/Product/1": {
					{Key: "title", Value: "Chemise rouge", Locale: "fr", UpdatedAt: "2023-05-01T00:00:00Z"},
				},
			},
		},
	}
}

func TestRebuildResource(t *testing.T) {
	t.Run("untouched locale is blanked, supplied locale is rewritten, row count unchanged", func(t *testing.T) {
		store := newFakeStore()
		remote := productFamilyCatalog()
		syncer := NewSyncer(store, remote, testLogger(t))

		// Seed the mirror as if both locales had been translated once.
		require.NoError(t, store.UpsertTranslations([]*model.Translation{
			{Shop: testShop, ResourceType: model.ResourceTypeProduct, ResourceID: "1", ParentID: "1",
				Field: "title", Locale: "fr", Content: "Red shirt", Translation: "Chemise écarlate", UpdatedAt: "2023-01-01T00:00:00Z"},
			{Shop: testShop, ResourceType: model.ResourceTypeProduct, ResourceID: "1", ParentID: "1",
				Field: "title", Locale: "de", Content: "Red shirt", Translation: "Rotes Hemd", UpdatedAt: "2023-01-01T00:00:00Z"},
		}))

		err := syncer.RebuildResource(testShop, model.ResourceTypeProduct, "1")
		require.NoError(t, err)

		// One row per field per non-primary locale: 3 fields x 2 locales.
		rows := store.sortedRows()
		require.Len(t, rows, 6)

		byKey := make(map[string]*model.Translation)
		for _, row := range rows {
			byKey[rowKey(row)] = row
		}

		fr := byKey[testShop+"|1|title|fr|"]
		require.NotNil(t, fr)
		assert.Equal(t, "Chemise rouge", fr.Translation)
		assert.Equal(t, "2023-05-01T00:00:00Z", fr.UpdatedAt)
		assert.Equal(t, "Red shirt", fr.Content)

		de := byKey[testShop+"|1|title|de|"]
		require.NotNil(t, de)
		assert.Equal(t, "", de.Translation)
		assert.Equal(t, "", de.UpdatedAt)
		assert.Equal(t, "Red shirt", de.Content)
	})

	t.Run("children carry the product as parent", func(t *testing.T) {
		store := newFakeStore()
		syncer := NewSyncer(store, productFamilyCatalog(), testLogger(t))

		require.NoError(t, syncer.RebuildResource(testShop, model.ResourceTypeProduct, "1"))

		for _, row := range store.sortedRows() {
			assert.Equal(t, "1", row.ParentID)
		}

		option := store.rows[testShop+"|7|name|fr|"]
		require.NotNil(t, option)
		assert.Equal(t, model.ResourceTypeProductOption, option.ResourceType)

		value := store.rows[testShop+"|11|name|fr|"]
		require.NotNil(t, value)
		assert.Equal(t, model.ResourceTypeProductOptionValue, value.ResourceType)
	})

	t.Run("unfetchable resource leaves the family blanked", func(t *testing.T) {
		store := newFakeStore()
		remote := productFamilyCatalog()
		remote.failResources = true
		syncer := NewSyncer(store, remote, testLogger(t))

		require.NoError(t, store.UpsertTranslations([]*model.Translation{
			{Shop: testShop, ResourceType: model.ResourceTypeProduct, ResourceID: "1", ParentID: "1",
				Field: "title", Locale: "fr", Content: "Red shirt", Translation: "Chemise rouge", UpdatedAt: "2023-01-01T00:00:00Z"},
		}))

		err := syncer.RebuildResource(testShop, model.ResourceTypeProduct, "1")
		require.NoError(t, err)

		row := store.rows[testShop+"|1|title|fr|"]
		require.NotNil(t, row)
		assert.Equal(t, "", row.Translation)
		assert.Equal(t, "Red shirt", row.Content)
	})
}

func crawlCatalog() *fakeCatalog {
	remote := &fakeCatalog{
		locales: []catalog.Locale{
			{Locale: "en", Primary: true, Published: true},
			{Locale: "fr", Published: true},
		},
		content: map[string][]catalog.TranslatableContent{
			"gid://shopify/Product/1": {{Key: "title", Value: "Red shirt", Digest: "d1", Locale: "en"}},
			"gid://shopify/Product/2": {{Key: "title", Value: "Blue shirt", Digest: "d2", Locale: "en"}},
			"gid://shopify/Product/3": {{Key: "title", Value: "Green shirt", Digest: "d3", Locale: "en"}},
		},
		translations: map[string]map[string][]catalog.TranslationValue{
			"fr": {
				"gid://shopify/Product/1": {{Key: "title", Value: "Chemise rouge", Locale: "fr", UpdatedAt: "2023-05-01T00:00:00Z"}},
				"gid://shopify/Product/3": {{Key: "title", Value: "Chemise verte", Locale: "fr", UpdatedAt: "2023-05-02T00:00:00Z"}},
			},
		},
	}
	remote.pages = map[string]*catalog.TranslatableResourcePage{
		"": {
			Resources: []catalog.TranslatableResource{
				{ResourceID: "gid://shopify/Product/1"},
				{ResourceID: "gid://shopify/Product/2"},
			},
			EndCursor:   "c1",
			HasNextPage: true,
		},
		"c1": {
			Resources: []catalog.TranslatableResource{
				{ResourceID: "gid://shopify/Product/3"},
			},
			EndCursor:   "c2",
			HasNextPage: false,
		},
	}
	return remote
}

func runCrawl(t *testing.T, store *fakeStore, remote *fakeCatalog) {
	syncer := NewSyncer(store, remote, testLogger(t))
	process := &model.SyncProcess{Shop: testShop, ResourceType: model.ResourceTypeProduct, HasNext: true}
	require.NoError(t, store.UpsertSyncProcess(process))

	for i := 0; i < 10; i++ {
		current, err := store.GetSyncProcess(testShop, model.ResourceTypeProduct)
		require.NoError(t, err)
		if !current.HasNext {
			return
		}
		require.NoError(t, syncer.Tick(current))
	}
	t.Fatal("crawl did not finish")
}

func TestCrawl(t *testing.T) {
	t.Run("interrupted crawl resumes from the stored cursor", func(t *testing.T) {
		store := newFakeStore()
		remote := crawlCatalog()
		syncer := NewSyncer(store, remote, testLogger(t))

		process := &model.SyncProcess{Shop: testShop, ResourceType: model.ResourceTypeProduct, HasNext: true}
		require.NoError(t, store.UpsertSyncProcess(process))
		require.NoError(t, syncer.Tick(process))

		stored, err := store.GetSyncProcess(testShop, model.ResourceTypeProduct)
		require.NoError(t, err)
		assert.Equal(t, "c1", stored.Cursor)
		assert.True(t, stored.HasNext)

		// A fresh syncer picks up where the first left off.
		resumed := NewSyncer(store, remote, testLogger(t))
		require.NoError(t, resumed.Tick(stored))

		assert.Equal(t, []string{"", "c1"}, remote.listCursors)

		stored, err = store.GetSyncProcess(testShop, model.ResourceTypeProduct)
		require.NoError(t, err)
		assert.False(t, stored.HasNext)
		assert.Equal(t, model.SyncStateComplete, stored.State())

		// The interrupted-and-resumed crawl mirrors the same rows as an
		// uninterrupted one.
		uninterrupted := newFakeStore()
		runCrawl(t, uninterrupted, crawlCatalog())
		assert.Equal(t, uninterrupted.sortedRows(), store.sortedRows())
	})

	t.Run("page fetch exhausting its retries is a no-op tick", func(t *testing.T) {
		store := newFakeStore()
		remote := crawlCatalog()
		remote.failPages = true
		syncer := NewSyncer(store, remote, testLogger(t))

		process := &model.SyncProcess{Shop: testShop, ResourceType: model.ResourceTypeProduct, Cursor: "c1", HasNext: true}
		require.NoError(t, store.UpsertSyncProcess(process))
		require.NoError(t, syncer.Tick(process))

		// The whole retry budget was spent on the same cursor.
		assert.Len(t, remote.listCursors, 10)

		stored, err := store.GetSyncProcess(testShop, model.ResourceTypeProduct)
		require.NoError(t, err)
		assert.Equal(t, "c1", stored.Cursor)
		assert.True(t, stored.HasNext)
		assert.Empty(t, store.rows)
	})

	t.Run("top-level crawl rows are their own parent", func(t *testing.T) {
		store := newFakeStore()
		runCrawl(t, store, crawlCatalog())

		rows := store.sortedRows()
		require.Len(t, rows, 3)
		for _, row := range rows {
			assert.Equal(t, row.ResourceID, row.ParentID)
		}

		blue := store.rows[testShop+"|2|title|fr|"]
		require.NotNil(t, blue)
		assert.Equal(t, "", blue.Translation)
	})
}
