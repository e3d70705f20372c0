// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/shoploc/shoploc/internal/catalog"
	"github.com/shoploc/shoploc/model"
)

// Context provides the API with all necessary data and interfaces for responding to requests.
//
// It is cloned before each request, allowing per-request changes such as logger annotations.
type Context struct {
	Store     Store
	Catalog   Catalog
	Logger    logrus.FieldLogger
	RequestID string
}

// Catalog is the subset of the remote catalog client the API needs:
// edit passthrough writes only, since reads are served from the mirror.
type Catalog interface {
	SetTranslations(gid string, entries []catalog.TranslationInput, marketID string) ([]catalog.TranslationValue, error)
	DeleteTranslations(gid string, keys []string, locale, marketID string) error
}

// Clone creates a shallow copy of context, allowing clones to apply per-request changes.
func (c *Context) Clone() *Context {
	return &Context{
		Store:   c.Store,
		Catalog: c.Catalog,
		Logger:  c.Logger,
	}
}

type contextHandlerFunc func(c *Context, w http.ResponseWriter, r *http.Request)

type contextHandler struct {
	context *Context
	handler contextHandlerFunc
}

// ServeHTTP satisfies the Handler interface for contextHandler
func (h contextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	context := h.context.Clone()
	context.RequestID = model.NewID()
	context.Logger = context.Logger.WithFields(
		logrus.Fields{
			"path":    r.URL.Path,
			"request": context.RequestID,
		})

	h.handler(context, w, r)
}

func newContextHandler(context *Context, handler contextHandlerFunc) *contextHandler {
	return &contextHandler{
		context: context,
		handler: handler,
	}
}
