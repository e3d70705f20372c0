// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package api

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/shoploc/shoploc/model"
)

type stateKey struct {
	shop       string
	resourceID string
	field      string
	locale     string
	market     string
}

func stateKeyFromQuery(query url.Values) (stateKey, bool) {
	key := stateKey{
		shop:       query.Get("shop"),
		resourceID: query.Get("resourceId"),
		field:      query.Get("field"),
		locale:     query.Get("locale"),
		market:     query.Get("market"),
	}
	ok := key.shop != "" && key.resourceID != "" && key.field != "" && key.locale != ""
	return key, ok
}

// handleGetState returns the editorial state of a single field. Drift
// against the mirrored source content is detected at read time, so a
// confirmed translation whose source changed upstream reports
// needs_attention without any write having happened.
func handleGetState(c *Context, w http.ResponseWriter, r *http.Request) {
	key, ok := stateKeyFromQuery(r.URL.Query())
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	lookup, err := c.Store.GetTranslationState(key.shop, key.resourceID, key.field, key.locale, key.market)
	if err != nil {
		c.Logger.WithError(err).Error("failed to look up translation state")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !lookup.Found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	state := lookup.State
	if state.Status == model.StateStatusConfirmed {
		row, err := c.Store.GetTranslation(key.shop, key.resourceID, key.field, key.locale, key.market)
		if err != nil {
			c.Logger.WithError(err).Error("failed to look up mirrored content for drift detection")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if row != nil {
			state.Status = model.DetectDrift(state.Status, state.PreviousValue, row.Content)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, state)
}

func handleUpsertState(c *Context, w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	state, err := model.NewTranslationStateFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Error("failed to unmarshal translation state")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = c.Store.UpsertTranslationState(state)
	if err != nil {
		c.Logger.WithError(err).Error("failed to store translation state")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func handleDeleteState(c *Context, w http.ResponseWriter, r *http.Request) {
	key, ok := stateKeyFromQuery(r.URL.Query())
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := c.Store.DeleteTranslationState(key.shop, key.resourceID, key.field, key.locale, key.market)
	if err != nil {
		c.Logger.WithError(err).Error("failed to delete translation state")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func handleGetStateFamily(c *Context, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	shop := query.Get("shop")
	productID := mux.Vars(r)["productID"]
	if shop == "" || productID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	states, err := c.Store.GetTranslationStatesByParentProduct(shop, productID, query.Get("locale"), query.Get("market"))
	if err != nil {
		c.Logger.WithError(err).Error("failed to aggregate translation states")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, states)
}
