// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shoploc/shoploc/model"
)

func validResourceType(resourceType string) bool {
	switch resourceType {
	case model.ResourceTypeProduct,
		model.ResourceTypeProductOption,
		model.ResourceTypeProductOptionValue,
		model.ResourceTypeCollection,
		model.ResourceTypeArticle,
		model.ResourceTypePage,
		model.ResourceTypeTheme,
		model.ResourceTypeMetaobject:
		return true
	}
	return false
}

// handleStartSync creates a crawl checkpoint for the shop and resource
// type, which the crawl supervisor then advances page by page. Starting
// an already-tracked sync is a no-op that reports its current status.
func handleStartSync(c *Context, w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	resourceType := mux.Vars(r)["resourceType"]
	if shop == "" || !validResourceType(resourceType) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	process, err := c.Store.GetSyncProcess(shop, resourceType)
	if err != nil {
		c.Logger.WithError(err).Error("failed to look up sync process")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if process != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		outputJSON(c, w, model.SyncStatus{SyncProcess: *process, State: process.State()})
		return
	}

	process = &model.SyncProcess{
		Shop:         shop,
		ResourceType: resourceType,
		Cursor:       "",
		HasNext:      true,
	}
	err = c.Store.UpsertSyncProcess(process)
	if err != nil {
		c.Logger.WithError(err).Error("failed to store sync process")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	outputJSON(c, w, model.SyncStatus{SyncProcess: *process, State: process.State()})
}

// handleRestartSync rewinds the checkpoint to the beginning regardless
// of its current state and re-pends any completed queue items for the
// shop, forcing a full pass over the catalog.
func handleRestartSync(c *Context, w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	resourceType := mux.Vars(r)["resourceType"]
	if shop == "" || !validResourceType(resourceType) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	process := &model.SyncProcess{
		Shop:         shop,
		ResourceType: resourceType,
		Cursor:       "",
		HasNext:      true,
	}
	err := c.Store.UpsertSyncProcess(process)
	if err != nil {
		c.Logger.WithError(err).Error("failed to rewind sync process")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = c.Store.ResetSyncQueue(shop)
	if err != nil {
		c.Logger.WithError(err).Error("failed to reset the resync queue")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	outputJSON(c, w, model.SyncStatus{SyncProcess: *process, State: process.State()})
}

func handleGetSyncStatus(c *Context, w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	resourceType := mux.Vars(r)["resourceType"]
	if shop == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	process, err := c.Store.GetSyncProcess(shop, resourceType)
	if err != nil {
		c.Logger.WithError(err).Error("failed to look up sync process")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if process == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, model.SyncStatus{SyncProcess: *process, State: process.State()})
}

func handleEnqueueResync(c *Context, w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	request, err := model.NewResyncRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Error("failed to unmarshal resync request")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if !validResourceType(request.ResourceType) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = c.Store.EnqueueSync(request.Shop, request.ResourceType, request.ResourceID)
	if err != nil {
		c.Logger.WithError(err).Error("failed to enqueue resync")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// handleProductWebhook translates a product update notification from
// the remote catalog into a queued resync. The shop is identified by
// the domain header the catalog sets on every webhook delivery.
func handleProductWebhook(c *Context, w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	shop := r.Header.Get("X-Shopify-Shop-Domain")
	if shop == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	webhook, err := model.NewProductWebhookFromReader(r.Body)
	if err != nil || webhook.ID == 0 {
		c.Logger.WithError(err).Error("failed to unmarshal product webhook")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = c.Store.EnqueueSync(shop, model.ResourceTypeProduct, strconv.FormatInt(webhook.ID, 10))
	if err != nil {
		c.Logger.WithError(err).Error("failed to enqueue resync for webhook")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
