// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Client is the programmatic interface to the ShopLoc API.
type Client struct {
	address    string
	headers    map[string]string
	httpClient *http.Client
}

// NewClient creates a new instance of Client.
func NewClient(address string) *Client {
	return &Client{
		address:    address,
		headers:    make(map[string]string),
		httpClient: &http.Client{},
	}
}

// SearchTranslations runs a substring search over the mirrored
// translations.
func (c *Client) SearchTranslations(request *SearchRequest) (*SearchResult, error) {
	params := url.Values{}
	params.Set("shop", request.Shop)
	params.Set("keyword", request.Keyword)
	if len(request.ResourceTypes) > 0 {
		params.Set("resourceType", strings.Join(request.ResourceTypes, ","))
	}
	if len(request.Locales) > 0 {
		params.Set("locale", strings.Join(request.Locales, ","))
	}
	params.Set("page", strconv.Itoa(request.Page))
	params.Set("perPage", strconv.Itoa(request.PerPage))

	resp, err := c.doGet(c.buildURL("/translations/search?%s", params.Encode()))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewSearchResultFromReader(resp.Body)

	default:
		return nil, errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// EditTranslations submits a batch of translation edits for one
// resource, writing through to the remote catalog.
func (c *Client) EditTranslations(request *TranslationEditRequest) error {
	resp, err := c.doPut(c.buildURL("/translations"), request)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil

	default:
		return errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// StartSync begins (or resumes) the full catalog crawl for a resource
// type.
func (c *Client) StartSync(shop, resourceType string) (*SyncStatus, error) {
	resp, err := c.doPost(c.buildURL("/sync/%s?shop=%s", resourceType, url.QueryEscape(shop)), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return NewSyncStatusFromReader(resp.Body)

	default:
		return nil, errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// RestartSync forces the crawl for a resource type back to the
// beginning and kicks the queue so targeted resyncs run again.
func (c *Client) RestartSync(shop, resourceType string) (*SyncStatus, error) {
	resp, err := c.doPost(c.buildURL("/sync/%s/restart?shop=%s", resourceType, url.QueryEscape(shop)), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusAccepted:
		return NewSyncStatusFromReader(resp.Body)

	default:
		return nil, errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// GetSyncStatus returns the crawl checkpoint for a resource type.
func (c *Client) GetSyncStatus(shop, resourceType string) (*SyncStatus, error) {
	resp, err := c.doGet(c.buildURL("/sync/%s?shop=%s", resourceType, url.QueryEscape(shop)))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, nil
	case http.StatusOK:
		return NewSyncStatusFromReader(resp.Body)

	default:
		return nil, errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// EnqueueResync queues a targeted resync of a single resource family.
func (c *Client) EnqueueResync(request *ResyncRequest) error {
	resp, err := c.doPost(c.buildURL("/resync"), request)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusAccepted:
		return nil

	default:
		return errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// GetState fetches the editorial state of a single field. A nil result
// with a nil error means no state was ever recorded.
func (c *Client) GetState(shop, resourceID, field, locale, market string) (*TranslationState, error) {
	params := stateParams(shop, resourceID, field, locale, market)
	resp, err := c.doGet(c.buildURL("/state?%s", params.Encode()))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, nil
	case http.StatusOK:
		var state TranslationState
		err = json.NewDecoder(resp.Body).Decode(&state)
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "failed to decode translation state")
		}
		return &state, nil

	default:
		return nil, errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// UpsertState creates or replaces the editorial state of a single
// field.
func (c *Client) UpsertState(state *TranslationState) error {
	resp, err := c.doPut(c.buildURL("/state"), state)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil

	default:
		return errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// DeleteState clears the editorial state of a single field.
func (c *Client) DeleteState(shop, resourceID, field, locale, market string) error {
	params := stateParams(shop, resourceID, field, locale, market)
	resp, err := c.doDelete(c.buildURL("/state?%s", params.Encode()))
	if err != nil {
		return err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil

	default:
		return errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

// GetStateFamily fetches all state rows of a product and its options
// and option values, in review order.
func (c *Client) GetStateFamily(shop, productID, locale, market string) ([]*TranslationState, error) {
	params := url.Values{}
	params.Set("shop", shop)
	params.Set("locale", locale)
	params.Set("market", market)

	resp, err := c.doGet(c.buildURL("/state/family/%s?%s", productID, params.Encode()))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationStateListFromReader(resp.Body)

	default:
		return nil, errors.Errorf("failed with status code %d", resp.StatusCode)
	}
}

func stateParams(shop, resourceID, field, locale, market string) url.Values {
	params := url.Values{}
	params.Set("shop", shop)
	params.Set("resourceId", resourceID)
	params.Set("field", field)
	params.Set("locale", locale)
	params.Set("market", market)
	return params
}

// closeBody ensures the Body of an http.Response is properly closed.
func closeBody(r *http.Response) {
	if r.Body != nil {
		_, _ = io.Copy(io.Discard, r.Body)
		_ = r.Body.Close()
	}
}

// buildURL builds a complete URL from a path and arguments.
func (c *Client) buildURL(urlPath string, args ...interface{}) string {
	return fmt.Sprintf("%s%s", c.address, fmt.Sprintf(urlPath, args...))
}

func (c *Client) doGet(u string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) doDelete(u string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) doPost(u string, request interface{}) (*http.Response, error) {
	return c.doWithBody(http.MethodPost, u, request)
}

func (c *Client) doPut(u string, request interface{}) (*http.Response, error) {
	return c.doWithBody(http.MethodPut, u, request)
}

func (c *Client) doWithBody(method, u string, request interface{}) (*http.Response, error) {
	body := &bytes.Buffer{}
	if request != nil {
		err := json.NewEncoder(body).Encode(request)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return c.httpClient.Do(req)
}
