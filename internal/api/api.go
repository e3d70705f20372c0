// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package api exposes the translation mirror, the sync controls and the
// editorial state tracker over HTTP.
package api

import (
	"encoding/json"
	"io"

	"github.com/gorilla/mux"
)

func Register(rootRouter *mux.Router, context *Context) {
	addContext := func(handler contextHandlerFunc) *contextHandler {
		return newContextHandler(context, handler)
	}

	rootRouter.Handle("/translations/search", addContext(handleSearchTranslations)).Methods("GET")
	rootRouter.Handle("/translations", addContext(handleEditTranslations)).Methods("PUT")

	rootRouter.Handle("/sync/{resourceType}", addContext(handleStartSync)).Methods("POST")
	rootRouter.Handle("/sync/{resourceType}/restart", addContext(handleRestartSync)).Methods("POST")
	rootRouter.Handle("/sync/{resourceType}", addContext(handleGetSyncStatus)).Methods("GET")
	rootRouter.Handle("/resync", addContext(handleEnqueueResync)).Methods("POST")
	rootRouter.Handle("/webhook/products", addContext(handleProductWebhook)).Methods("POST")

	rootRouter.Handle("/state", addContext(handleGetState)).Methods("GET")
	rootRouter.Handle("/state", addContext(handleUpsertState)).Methods("PUT")
	rootRouter.Handle("/state", addContext(handleDeleteState)).Methods("DELETE")
	rootRouter.Handle("/state/family/{productID}", addContext(handleGetStateFamily)).Methods("GET")
}

// outputJSON is a helper method to write the given data as JSON to the given writer.
//
// It only logs an error if one occurs, rather than returning, since there is no point in trying
// to send a new status code back to the client once the body has started sending.
func outputJSON(c *Context, w io.Writer, data interface{}) {
	encoder := json.NewEncoder(w)
	err := encoder.Encode(data)
	if err != nil {
		c.Logger.WithError(err).Error("failed to encode result")
	}
}
