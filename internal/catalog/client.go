// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package catalog speaks GraphQL to the remote catalog service (the
// Shopify Admin API) on behalf of the sync pipeline. It is the only
// package that knows about gids, pagination tokens, or the wire shapes
// of translatable content.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the coordinates of one shop's Admin API endpoint.
type Config struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// Client issues queries and mutations against the remote catalog.
type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	logger      logrus.FieldLogger
}

// NewClient creates a catalog client for the given shop.
func NewClient(config Config, logger logrus.FieldLogger) *Client {
	shopDomain := config.ShopDomain
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	return &Client{
		shopDomain:  shopDomain,
		accessToken: config.AccessToken,
		apiVersion:  config.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// execute posts one GraphQL document and decodes the data payload into
// dest.
func (c *Client) execute(query string, variables map[string]interface{}, dest interface{}) error {
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.shopDomain, c.apiVersion)

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrap(err, "failed to marshal graphql request")
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create graphql request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to reach the remote catalog")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read catalog response")
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("catalog request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var gqlResp graphQLResponse
	if err = json.Unmarshal(respBody, &gqlResp); err != nil {
		return errors.Wrap(err, "failed to unmarshal catalog response")
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, len(gqlResp.Errors))
		for i, gqlErr := range gqlResp.Errors {
			messages[i] = gqlErr.Message
		}
		return errors.Errorf("catalog returned errors: %s", strings.Join(messages, "; "))
	}

	if dest != nil {
		if err = json.Unmarshal(gqlResp.Data, dest); err != nil {
			return errors.Wrap(err, "failed to unmarshal catalog data")
		}
	}

	return nil
}

// Locale is one shop locale as reported by the remote catalog.
type Locale struct {
	Locale    string `json:"locale"`
	Name      string `json:"name"`
	Primary   bool   `json:"primary"`
	Published bool   `json:"published"`
}

// Market is one customer segment that can carry locale-specific
// content overrides.
type Market struct {
	ID      string
	Handle  string
	Name    string
	Locales []string
}

// TranslatableContent is one source-language field of a resource,
// along with the digest the catalog expects back when the field is
// translated.
type TranslatableContent struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Digest string `json:"digest"`
	Locale string `json:"locale"`
}

// TranslationValue is one registered translation of a field.
type TranslationValue struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Locale    string `json:"locale"`
	UpdatedAt string `json:"updatedAt"`
}

// TranslatableResource pairs a resource gid with its translatable
// source content.
type TranslatableResource struct {
	ResourceID string                `json:"resourceId"`
	Content    []TranslatableContent `json:"translatableContent"`
}

// ResourceTranslations extends TranslatableResource with the
// translations registered for one locale and market context.
type ResourceTranslations struct {
	ResourceID   string                `json:"resourceId"`
	Content      []TranslatableContent `json:"translatableContent"`
	Translations []TranslationValue    `json:"translations"`
}

// TranslatableResourcePage is one page of the paged enumeration of
// translatable resources of a single type.
type TranslatableResourcePage struct {
	Resources   []TranslatableResource
	EndCursor   string
	HasNextPage bool
}

// Option is a structural child of a product, such as "Size".
type Option struct {
	ID     string
	Values []OptionValue
}

// OptionValue is a structural child of an option, such as "XL".
type OptionValue struct {
	ID string
}

// Resource is the structural tree of a resource: the resource itself
// plus any translatable children.
type Resource struct {
	ID      string
	Options []Option
}

// TranslationInput is one field translation submitted to the catalog.
// Digest must echo the digest of the source content the translation
// was written against.
type TranslationInput struct {
	Locale string
	Key    string
	Value  string
	Digest string
}

// ListLocales returns every locale configured on the shop.
func (c *Client) ListLocales() ([]Locale, error) {
	var data struct {
		ShopLocales []Locale `json:"shopLocales"`
	}
	err := c.execute(localesQuery, nil, &data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shop locales")
	}
	return data.ShopLocales, nil
}

// ListMarkets returns every market configured on the shop together
// with the locales its web presence publishes.
func (c *Client) ListMarkets() ([]Market, error) {
	var data struct {
		Markets struct {
			Edges []struct {
				Node struct {
					ID          string `json:"id"`
					Handle      string `json:"handle"`
					Name        string `json:"name"`
					WebPresence *struct {
						DefaultLocale    string   `json:"defaultLocale"`
						AlternateLocales []string `json:"alternateLocales"`
					} `json:"webPresence"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"markets"`
	}
	err := c.execute(marketsQuery, nil, &data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list markets")
	}

	markets := make([]Market, 0, len(data.Markets.Edges))
	for _, edge := range data.Markets.Edges {
		market := Market{
			ID:     edge.Node.ID,
			Handle: edge.Node.Handle,
			Name:   edge.Node.Name,
		}
		if presence := edge.Node.WebPresence; presence != nil {
			market.Locales = append([]string{presence.DefaultLocale}, presence.AlternateLocales...)
		}
		markets = append(markets, market)
	}

	return markets, nil
}

// GetResource returns the structural tree rooted at the given gid.
// Only products have translatable children; anything else is returned
// as a standalone node without a remote round trip.
func (c *Client) GetResource(gid string) (*Resource, error) {
	if !strings.Contains(gid, "/Product/") {
		return &Resource{ID: gid}, nil
	}

	var data struct {
		Product *struct {
			ID      string `json:"id"`
			Options []struct {
				ID           string `json:"id"`
				OptionValues []struct {
					ID string `json:"id"`
				} `json:"optionValues"`
			} `json:"options"`
		} `json:"product"`
	}
	err := c.execute(productStructureQuery, map[string]interface{}{"id": gid}, &data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get structure of %s", gid)
	}
	if data.Product == nil {
		return nil, errors.Errorf("resource %s not found", gid)
	}

	resource := &Resource{ID: data.Product.ID}
	for _, option := range data.Product.Options {
		o := Option{ID: option.ID}
		for _, value := range option.OptionValues {
			o.Values = append(o.Values, OptionValue{ID: value.ID})
		}
		resource.Options = append(resource.Options, o)
	}

	return resource, nil
}

// ListTranslatableIDs returns one page of the enumeration of
// translatable resources of resourceType, starting after cursor. An
// empty cursor starts from the beginning.
func (c *Client) ListTranslatableIDs(resourceType, cursor string, pageSize int) (*TranslatableResourcePage, error) {
	variables := map[string]interface{}{
		"resourceType": resourceType,
		"first":        pageSize,
	}
	if cursor != "" {
		variables["after"] = cursor
	}

	var data struct {
		TranslatableResources struct {
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Edges []struct {
				Node TranslatableResource `json:"node"`
			} `json:"edges"`
		} `json:"translatableResources"`
	}
	err := c.execute(translatableResourcesQuery, variables, &data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list translatable %s resources", resourceType)
	}

	page := &TranslatableResourcePage{
		EndCursor:   data.TranslatableResources.PageInfo.EndCursor,
		HasNextPage: data.TranslatableResources.PageInfo.HasNextPage,
	}
	for _, edge := range data.TranslatableResources.Edges {
		page.Resources = append(page.Resources, edge.Node)
	}

	return page, nil
}

// GetTranslations fetches source content and registered translations
// for a batch of gids in one locale and market context. An empty
// marketID means the default context.
func (c *Client) GetTranslations(gids []string, locale, marketID string) ([]ResourceTranslations, error) {
	variables := map[string]interface{}{
		"resourceIds": gids,
		"first":       len(gids),
		"locale":      locale,
	}
	if marketID != "" {
		variables["marketId"] = marketID
	}

	var data struct {
		TranslatableResourcesByIds struct {
			Edges []struct {
				Node ResourceTranslations `json:"node"`
			} `json:"edges"`
		} `json:"translatableResourcesByIds"`
	}
	err := c.execute(translationsByIDsQuery, variables, &data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s translations", locale)
	}

	nodes := make([]ResourceTranslations, 0, len(data.TranslatableResourcesByIds.Edges))
	for _, edge := range data.TranslatableResourcesByIds.Edges {
		nodes = append(nodes, edge.Node)
	}

	return nodes, nil
}

// SetTranslations registers a batch of translations on one resource.
// The returned values echo what the catalog stored, including the
// update timestamps.
func (c *Client) SetTranslations(gid string, entries []TranslationInput, marketID string) ([]TranslationValue, error) {
	translations := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		input := map[string]interface{}{
			"locale":                   entry.Locale,
			"key":                      entry.Key,
			"value":                    entry.Value,
			"translatableContentDigest": entry.Digest,
		}
		if marketID != "" {
			input["marketId"] = marketID
		}
		translations = append(translations, input)
	}

	var data struct {
		TranslationsRegister struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
			Translations []TranslationValue `json:"translations"`
		} `json:"translationsRegister"`
	}
	err := c.execute(translationsRegisterMutation, map[string]interface{}{
		"resourceId":   gid,
		"translations": translations,
	}, &data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to register translations on %s", gid)
	}

	if len(data.TranslationsRegister.UserErrors) > 0 {
		messages := make([]string, 0, len(data.TranslationsRegister.UserErrors))
		for _, userError := range data.TranslationsRegister.UserErrors {
			messages = append(messages, userError.Message)
		}
		return nil, errors.Errorf("catalog rejected translations on %s: %s", gid, strings.Join(messages, "; "))
	}

	return data.TranslationsRegister.Translations, nil
}

// DeleteTranslations removes the translations of the given keys from
// one resource in one locale and market context.
func (c *Client) DeleteTranslations(gid string, keys []string, locale, marketID string) error {
	variables := map[string]interface{}{
		"resourceId":      gid,
		"translationKeys": keys,
		"locales":         []string{locale},
	}
	if marketID != "" {
		variables["marketIds"] = []string{marketID}
	}

	var data struct {
		TranslationsRemove struct {
			UserErrors []struct {
				Message string `json:"message"`
			} `json:"userErrors"`
		} `json:"translationsRemove"`
	}
	err := c.execute(translationsRemoveMutation, variables, &data)
	if err != nil {
		return errors.Wrapf(err, "failed to remove translations on %s", gid)
	}

	if len(data.TranslationsRemove.UserErrors) > 0 {
		messages := make([]string, 0, len(data.TranslationsRemove.UserErrors))
		for _, userError := range data.TranslationsRemove.UserErrors {
			messages = append(messages, userError.Message)
		}
		return errors.Errorf("catalog rejected translation removal on %s: %s", gid, strings.Join(messages, "; "))
	}

	return nil
}
