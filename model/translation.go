// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Resource types as reported by the remote catalog for translatable
// content. Options and option values are structural children of a
// product and carry the product's ID in ParentID.
const (
	ResourceTypeProduct            = "PRODUCT"
	ResourceTypeProductOption      = "PRODUCT_OPTION"
	ResourceTypeProductOptionValue = "PRODUCT_OPTION_VALUE"
	ResourceTypeCollection         = "COLLECTION"
	ResourceTypeArticle            = "ONLINE_STORE_ARTICLE"
	ResourceTypePage               = "ONLINE_STORE_PAGE"
	ResourceTypeTheme              = "ONLINE_STORE_THEME"
	ResourceTypeMetaobject         = "METAOBJECT"
)

// Translation is one mirrored field of remote catalog content: the
// last-seen source value and its translation for a single
// (shop, resource, field, locale, market) combination.
//
// Rows are snapshots, not deltas. A sync overwrites the whole row; an
// empty Translation value means the field has no translation. UpdatedAt
// is the remote update timestamp as returned by the catalog, empty when
// the field was never translated.
type Translation struct {
	Shop         string
	ResourceType string
	ResourceID   string
	ParentID     string
	Field        string
	Locale       string
	Market       string
	Content      string
	Translation  string
	UpdatedAt    string
}

// SearchResult carries one page of translation search hits along with
// the total number of matches.
type SearchResult struct {
	Total int64
	Rows  []*Translation
}

// SearchRequest describes a substring search over mirrored
// translations. Empty filter slices mean "no filter". Page is
// zero-based.
type SearchRequest struct {
	Shop          string
	Keyword       string
	ResourceTypes []string
	Locales       []string
	Page          int
	PerPage       int
}

// TranslationEdit is a single field edit submitted by the editor. An
// empty Value removes the translation. Digest is the content
// fingerprint handed out by the remote catalog and is forwarded
// opaquely.
type TranslationEdit struct {
	Field  string
	Value  string
	Digest string
}

// TranslationEditRequest applies a batch of field edits for one
// resource in one locale and market context.
type TranslationEditRequest struct {
	Shop         string
	ResourceType string
	ResourceID   string
	Locale       string
	Market       string
	Edits        []TranslationEdit
}

// Validate validates the values of a translation edit request.
func (request *TranslationEditRequest) Validate() error {
	if len(request.Shop) == 0 {
		return errors.New("must specify shop")
	}
	if len(request.ResourceType) == 0 {
		return errors.New("must specify resource type")
	}
	if len(request.ResourceID) == 0 {
		return errors.New("must specify resource ID")
	}
	if len(request.Locale) == 0 {
		return errors.New("must specify locale")
	}
	if len(request.Edits) == 0 {
		return errors.New("must specify at least one edit")
	}
	for _, edit := range request.Edits {
		if len(edit.Field) == 0 {
			return errors.New("every edit must specify a field")
		}
	}

	return nil
}

// NewTranslationEditRequestFromReader creates a TranslationEditRequest
// from a Reader and validates it.
func NewTranslationEditRequestFromReader(reader io.Reader) (*TranslationEditRequest, error) {
	var request TranslationEditRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode translation edit request")
	}

	err = request.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "translation edit request failed validation")
	}

	return &request, nil
}

// NewSearchResultFromReader creates a SearchResult from a Reader.
func NewSearchResultFromReader(reader io.Reader) (*SearchResult, error) {
	var result SearchResult
	err := json.NewDecoder(reader).Decode(&result)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode search result")
	}
	return &result, nil
}
