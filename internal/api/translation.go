// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shoploc/shoploc/internal/catalog"
	"github.com/shoploc/shoploc/model"
)

func handleSearchTranslations(c *Context, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := &model.SearchRequest{
		Shop:    query.Get("shop"),
		Keyword: query.Get("keyword"),
	}
	if request.Shop == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if types := query.Get("resourceType"); types != "" {
		request.ResourceTypes = strings.Split(types, ",")
	}
	if locales := query.Get("locale"); locales != "" {
		request.Locales = strings.Split(locales, ",")
	}
	request.Page, _ = strconv.Atoi(query.Get("page"))
	request.PerPage, _ = strconv.Atoi(query.Get("perPage"))

	result, err := c.Store.SearchTranslations(request)
	if err != nil {
		c.Logger.WithError(err).Error("failed to search translations")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, result)
}

// handleEditTranslations forwards a batch of field edits to the remote
// catalog and mirrors the outcome locally, so search reflects the edit
// without waiting for the next sync. An empty value removes the
// translation.
func handleEditTranslations(c *Context, w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	request, err := model.NewTranslationEditRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Error("failed to unmarshal translation edit request")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	gid := catalog.GID(request.ResourceType, request.ResourceID)
	marketGID := catalog.MarketGID(request.Market)

	var entries []catalog.TranslationInput
	var removals []string
	for _, edit := range request.Edits {
		if edit.Value == "" {
			removals = append(removals, edit.Field)
			continue
		}
		entries = append(entries, catalog.TranslationInput{
			Locale: request.Locale,
			Key:    edit.Field,
			Value:  edit.Value,
			Digest: edit.Digest,
		})
	}

	updatedAtByField := map[string]string{}
	if len(entries) > 0 {
		registered, err := c.Catalog.SetTranslations(gid, entries, marketGID)
		if err != nil {
			c.Logger.WithError(err).Error("failed to register translations with the remote catalog")
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		for _, value := range registered {
			updatedAtByField[value.Key] = value.UpdatedAt
		}
	}
	if len(removals) > 0 {
		err = c.Catalog.DeleteTranslations(gid, removals, request.Locale, marketGID)
		if err != nil {
			c.Logger.WithError(err).Error("failed to remove translations from the remote catalog")
			w.WriteHeader(http.StatusBadGateway)
			return
		}
	}

	err = mirrorEdits(c, request, updatedAtByField)
	if err != nil {
		c.Logger.WithError(err).Error("edit applied remotely but the local mirror couldn't be updated")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// mirrorEdits rewrites the mirrored rows touched by an edit. Source
// content and parent linkage are carried over from the existing row
// when one exists; the next sync fills them in otherwise.
func mirrorEdits(c *Context, request *model.TranslationEditRequest, updatedAtByField map[string]string) error {
	var rows []*model.Translation
	for _, edit := range request.Edits {
		row := &model.Translation{
			Shop:         request.Shop,
			ResourceType: request.ResourceType,
			ResourceID:   request.ResourceID,
			Field:        edit.Field,
			Locale:       request.Locale,
			Market:       request.Market,
			Translation:  edit.Value,
			UpdatedAt:    updatedAtByField[edit.Field],
		}

		existing, err := c.Store.GetTranslation(request.Shop, request.ResourceID, edit.Field, request.Locale, request.Market)
		if err != nil {
			return err
		}
		if existing != nil {
			row.ParentID = existing.ParentID
			row.Content = existing.Content
		}

		rows = append(rows, row)
	}

	return c.Store.UpsertTranslations(rows)
}
