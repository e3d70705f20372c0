// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoploc/shoploc/internal/catalog"
	mock_api "github.com/shoploc/shoploc/internal/mocks/api"
	"github.com/shoploc/shoploc/model"
)

func TestSearchTranslations(t *testing.T) {
	logger := MakeLogger(t)
	mockController := gomock.NewController(t)
	store := mock_api.NewMockStore(mockController)
	router := mux.NewRouter()
	Register(router, &Context{
		Store:  store,
		Logger: logger,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	t.Run("missing shop", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/translations/search?keyword=mug", ts.URL))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("search with filters", func(t *testing.T) {
		store.EXPECT().
			SearchTranslations(&model.SearchRequest{
				Shop:          "alpha.myshopify.com",
				Keyword:       "mug",
				ResourceTypes: []string{model.ResourceTypeProduct},
				Locales:       []string{"fr"},
				Page:          1,
				PerPage:       10,
			}).
			Return(&model.SearchResult{
				Total: 1,
				Rows: []*model.Translation{
					{Shop: "alpha.myshopify.com", ResourceID: "1", Field: "title", Locale: "fr", Translation: "tasse à café"},
				},
			}, nil).
			Times(1)

		resp, err := http.Get(fmt.Sprintf("%s/translations/search?shop=alpha.myshopify.com&keyword=mug&resourceType=PRODUCT&locale=fr&page=1&perPage=10", ts.URL))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result, err := model.NewSearchResultFromReader(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "tasse à café", result.Rows[0].Translation)
	})

	t.Run("encounter an error from the db", func(t *testing.T) {
		store.EXPECT().
			SearchTranslations(gomock.Any()).
			Return(nil, errors.New("problem talking to database")).
			Times(1)

		resp, err := http.Get(fmt.Sprintf("%s/translations/search?shop=alpha.myshopify.com", ts.URL))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestSyncEndpoints(t *testing.T) {
	logger := MakeLogger(t)
	mockController := gomock.NewController(t)
	store := mock_api.NewMockStore(mockController)
	router := mux.NewRouter()
	Register(router, &Context{
		Store:  store,
		Logger: logger,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()
	client := model.NewClient(ts.URL)

	t.Run("start a new sync", func(t *testing.T) {
		store.EXPECT().
			GetSyncProcess("alpha.myshopify.com", model.ResourceTypeProduct).
			Return(nil, nil).
			Times(1)
		store.EXPECT().
			UpsertSyncProcess(&model.SyncProcess{
				Shop:         "alpha.myshopify.com",
				ResourceType: model.ResourceTypeProduct,
				Cursor:       "",
				HasNext:      true,
			}).
			Return(nil).
			Times(1)

		status, err := client.StartSync("alpha.myshopify.com", model.ResourceTypeProduct)
		require.NoError(t, err)
		assert.Equal(t, model.SyncStateInProgress, status.State)
		assert.Empty(t, status.Cursor)
	})

	t.Run("start an already-tracked sync is a no-op", func(t *testing.T) {
		store.EXPECT().
			GetSyncProcess("alpha.myshopify.com", model.ResourceTypeProduct).
			Return(&model.SyncProcess{
				Shop:         "alpha.myshopify.com",
				ResourceType: model.ResourceTypeProduct,
				Cursor:       "c9",
				HasNext:      false,
			}, nil).
			Times(1)

		status, err := client.StartSync("alpha.myshopify.com", model.ResourceTypeProduct)
		require.NoError(t, err)
		assert.Equal(t, model.SyncStateComplete, status.State)
		assert.Equal(t, "c9", status.Cursor)
	})

	t.Run("start with an unknown resource type", func(t *testing.T) {
		resp, err := http.Post(fmt.Sprintf("%s/sync/GADGET?shop=alpha.myshopify.com", ts.URL), "application/json", nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("restart rewinds the cursor and the queue", func(t *testing.T) {
		store.EXPECT().
			UpsertSyncProcess(&model.SyncProcess{
				Shop:         "alpha.myshopify.com",
				ResourceType: model.ResourceTypeProduct,
				Cursor:       "",
				HasNext:      true,
			}).
			Return(nil).
			Times(1)
		store.EXPECT().
			ResetSyncQueue("alpha.myshopify.com").
			Return(nil).
			Times(1)

		status, err := client.RestartSync("alpha.myshopify.com", model.ResourceTypeProduct)
		require.NoError(t, err)
		assert.Equal(t, model.SyncStateInProgress, status.State)
	})

	t.Run("status of an untracked sync", func(t *testing.T) {
		store.EXPECT().
			GetSyncProcess("alpha.myshopify.com", model.ResourceTypeCollection).
			Return(nil, nil).
			Times(1)

		status, err := client.GetSyncStatus("alpha.myshopify.com", model.ResourceTypeCollection)
		require.NoError(t, err)
		assert.Nil(t, status)
	})
}

func TestEnqueueResync(t *testing.T) {
	logger := MakeLogger(t)
	mockController := gomock.NewController(t)
	store := mock_api.NewMockStore(mockController)
	router := mux.NewRouter()
	Register(router, &Context{
		Store:  store,
		Logger: logger,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()
	client := model.NewClient(ts.URL)

	t.Run("enqueue a targeted resync", func(t *testing.T) {
		store.EXPECT().
			EnqueueSync("alpha.myshopify.com", model.ResourceTypeProduct, "42").
			Return(nil).
			Times(1)

		err := client.EnqueueResync(&model.ResyncRequest{
			Shop:         "alpha.myshopify.com",
			ResourceType: model.ResourceTypeProduct,
			ResourceID:   "42",
		})
		require.NoError(t, err)
	})

	t.Run("reject an unknown resource type", func(t *testing.T) {
		err := client.EnqueueResync(&model.ResyncRequest{
			Shop:         "alpha.myshopify.com",
			ResourceType: "GADGET",
			ResourceID:   "42",
		})
		require.Error(t, err)
	})

	t.Run("product webhook enqueues a resync", func(t *testing.T) {
		store.EXPECT().
			EnqueueSync("alpha.myshopify.com", model.ResourceTypeProduct, "777").
			Return(nil).
			Times(1)

		req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/webhook/products", ts.URL), strings.NewReader(`{"id": 777}`))
		require.NoError(t, err)
		req.Header.Set("X-Shopify-Shop-Domain", "alpha.myshopify.com")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("webhook without a shop domain header", func(t *testing.T) {
		resp, err := http.Post(fmt.Sprintf("%s/webhook/products", ts.URL), "application/json", strings.NewReader(`{"id": 777}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStateEndpoints(t *testing.T) {
	logger := MakeLogger(t)
	mockController := gomock.NewController(t)
	store := mock_api.NewMockStore(mockController)
	router := mux.NewRouter()
	Register(router, &Context{
		Store:  store,
		Logger: logger,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()
	client := model.NewClient(ts.URL)

	t.Run("state never recorded", func(t *testing.T) {
		store.EXPECT().
			GetTranslationState("alpha.myshopify.com", "1", "title", "fr", "").
			Return(model.StateLookup{}, nil).
			Times(1)

		state, err := client.GetState("alpha.myshopify.com", "1", "title", "fr", "")
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("confirmed state with drifted source", func(t *testing.T) {
		store.EXPECT().
			GetTranslationState("alpha.myshopify.com", "1", "title", "fr", "").
			Return(model.StateLookup{
				Found: true,
				State: model.TranslationState{
					Shop:          "alpha.myshopify.com",
					ResourceID:    "1",
					Field:         "title",
					Locale:        "fr",
					ResourceType:  model.StateResourceProduct,
					Status:        model.StateStatusConfirmed,
					PreviousValue: "Coffee Mug",
				},
			}, nil).
			Times(1)
		store.EXPECT().
			GetTranslation("alpha.myshopify.com", "1", "title", "fr", "").
			Return(&model.Translation{Content: "Large Coffee Mug"}, nil).
			Times(1)

		state, err := client.GetState("alpha.myshopify.com", "1", "title", "fr", "")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, model.StateStatusNeedsAttention, state.Status)
	})

	t.Run("confirmed state with unchanged source", func(t *testing.T) {
		store.EXPECT().
			GetTranslationState("alpha.myshopify.com", "1", "title", "fr", "").
			Return(model.StateLookup{
				Found: true,
				State: model.TranslationState{
					Status:        model.StateStatusConfirmed,
					PreviousValue: "Coffee Mug",
				},
			}, nil).
			Times(1)
		store.EXPECT().
			GetTranslation("alpha.myshopify.com", "1", "title", "fr", "").
			Return(&model.Translation{Content: "Coffee Mug"}, nil).
			Times(1)

		state, err := client.GetState("alpha.myshopify.com", "1", "title", "fr", "")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, model.StateStatusConfirmed, state.Status)
	})

	t.Run("in-progress state skips the drift check", func(t *testing.T) {
		store.EXPECT().
			GetTranslationState("alpha.myshopify.com", "1", "title", "fr", "").
			Return(model.StateLookup{
				Found: true,
				State: model.TranslationState{Status: model.StateStatusInProgress},
			}, nil).
			Times(1)

		state, err := client.GetState("alpha.myshopify.com", "1", "title", "fr", "")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, model.StateStatusInProgress, state.Status)
	})

	t.Run("upsert a state", func(t *testing.T) {
		state := &model.TranslationState{
			Shop:         "alpha.myshopify.com",
			ResourceID:   "7",
			Field:        "name",
			Locale:       "fr",
			ResourceType: model.StateResourceOption,
			Status:       model.StateStatusInProgress,
		}
		store.EXPECT().
			UpsertTranslationState(state).
			Return(nil).
			Times(1)

		err := client.UpsertState(state)
		require.NoError(t, err)
	})

	t.Run("delete a state", func(t *testing.T) {
		store.EXPECT().
			DeleteTranslationState("alpha.myshopify.com", "7", "name", "fr", "").
			Return(nil).
			Times(1)

		err := client.DeleteState("alpha.myshopify.com", "7", "name", "fr", "")
		require.NoError(t, err)
	})

	t.Run("family aggregation", func(t *testing.T) {
		store.EXPECT().
			GetTranslationStatesByParentProduct("alpha.myshopify.com", "1", "fr", "").
			Return([]*model.TranslationState{
				{ResourceID: "1", ResourceType: model.StateResourceProduct, Field: "title"},
				{ResourceID: "7", ResourceType: model.StateResourceOption, Field: "name"},
				{ResourceID: "11", ResourceType: model.StateResourceOptionValue, Field: "name"},
			}, nil).
			Times(1)

		states, err := client.GetStateFamily("alpha.myshopify.com", "1", "fr", "")
		require.NoError(t, err)
		require.Len(t, states, 3)
		assert.Equal(t, model.StateResourceProduct, states[0].ResourceType)
		assert.Equal(t, model.StateResourceOptionValue, states[2].ResourceType)
	})
}

func TestEditTranslations(t *testing.T) {
	logger := MakeLogger(t)
	mockController := gomock.NewController(t)
	store := mock_api.NewMockStore(mockController)
	remote := mock_api.NewMockCatalog(mockController)
	router := mux.NewRouter()
	Register(router, &Context{
		Store:   store,
		Catalog: remote,
		Logger:  logger,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()
	client := model.NewClient(ts.URL)

	t.Run("register an edit and mirror it", func(t *testing.T) {
		remote.EXPECT().
			SetTranslations(
				"gid://shopify/Product/1",
				[]catalog.TranslationInput{
					{Locale: "fr", Key: "title", Value: "tasse à café", Digest: "d1"},
				},
				"").
			Return([]catalog.TranslationValue{
				{Key: "title", Value: "tasse à café", Locale: "fr", UpdatedAt: "2026-08-29T10:00:00Z"},
			}, nil).
			Times(1)
		store.EXPECT().
			GetTranslation("alpha.myshopify.com", "1", "title", "fr", "").
			Return(&model.Translation{
				Shop:       "alpha.myshopify.com",
				ResourceID: "1",
				Field:      "title",
				Locale:     "fr",
				Content:    "Coffee Mug",
			}, nil).
			Times(1)
		store.EXPECT().
			UpsertTranslations([]*model.Translation{
				{
					Shop:         "alpha.myshopify.com",
					ResourceType: model.ResourceTypeProduct,
					ResourceID:   "1",
					Field:        "title",
					Locale:       "fr",
					Content:      "Coffee Mug",
					Translation:  "tasse à café",
					UpdatedAt:    "2026-08-29T10:00:00Z",
				},
			}).
			Return(nil).
			Times(1)

		err := client.EditTranslations(&model.TranslationEditRequest{
			Shop:         "alpha.myshopify.com",
			ResourceType: model.ResourceTypeProduct,
			ResourceID:   "1",
			Locale:       "fr",
			Edits: []model.TranslationEdit{
				{Field: "title", Value: "tasse à café", Digest: "d1"},
			},
		})
		require.NoError(t, err)
	})

	t.Run("empty value removes the translation", func(t *testing.T) {
		remote.EXPECT().
			DeleteTranslations("gid://shopify/Product/1", []string{"title"}, "fr", "").
			Return(nil).
			Times(1)
		store.EXPECT().
			GetTranslation("alpha.myshopify.com", "1", "title", "fr", "").
			Return(nil, nil).
			Times(1)
		store.EXPECT().
			UpsertTranslations([]*model.Translation{
				{
					Shop:         "alpha.myshopify.com",
					ResourceType: model.ResourceTypeProduct,
					ResourceID:   "1",
					Field:        "title",
					Locale:       "fr",
				},
			}).
			Return(nil).
			Times(1)

		err := client.EditTranslations(&model.TranslationEditRequest{
			Shop:         "alpha.myshopify.com",
			ResourceType: model.ResourceTypeProduct,
			ResourceID:   "1",
			Locale:       "fr",
			Edits: []model.TranslationEdit{
				{Field: "title", Value: ""},
			},
		})
		require.NoError(t, err)
	})

	t.Run("market context edits use the market gid", func(t *testing.T) {
		remote.EXPECT().
			SetTranslations(
				"gid://shopify/Product/1",
				gomock.Any(),
				"gid://shopify/Market/55").
			Return([]catalog.TranslationValue{{Key: "title"}}, nil).
			Times(1)
		store.EXPECT().
			GetTranslation("alpha.myshopify.com", "1", "title", "fr", "55").
			Return(nil, nil).
			Times(1)
		store.EXPECT().
			UpsertTranslations(gomock.Any()).
			Return(nil).
			Times(1)

		err := client.EditTranslations(&model.TranslationEditRequest{
			Shop:         "alpha.myshopify.com",
			ResourceType: model.ResourceTypeProduct,
			ResourceID:   "1",
			Locale:       "fr",
			Market:       "55",
			Edits: []model.TranslationEdit{
				{Field: "title", Value: "tasse"},
			},
		})
		require.NoError(t, err)
	})

	t.Run("reject an invalid request", func(t *testing.T) {
		err := client.EditTranslations(&model.TranslationEditRequest{
			Shop: "alpha.myshopify.com",
		})
		require.Error(t, err)
	})
}

// MakeLogger creates a log.FieldLogger that routes to tb.Log.
func MakeLogger(tb testing.TB) log.FieldLogger {
	logger := log.New()
	logger.SetOutput(&testingWriter{tb})
	logger.SetLevel(log.TraceLevel)

	return logger
}

// testingWriter is an io.Writer that writes through t.Log.
type testingWriter struct {
	tb testing.TB
}

func (tw *testingWriter) Write(b []byte) (int, error) {
	tw.tb.Log(strings.TrimSpace(string(b)))
	return len(b), nil
}
