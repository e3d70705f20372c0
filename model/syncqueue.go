package model

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Sync queue item statuses. Only pending items are ever picked up for
// work; anything non-zero is simply ignored by the drain step.
const (
	SyncItemPending int64 = 0
	SyncItemDone    int64 = 1
)

// SyncItem is one queued request to resynchronize a single resource
// family, typically enqueued by a webhook after the resource changed
// upstream.
type SyncItem struct {
	Shop         string
	ResourceType string
	ResourceID   string
	Status       int64
	CreateAt     int64
}

// ResyncRequest asks the server to enqueue a targeted resync of one
// resource.
type ResyncRequest struct {
	Shop         string
	ResourceType string
	ResourceID   string
}

// Validate validates the values of a resync request.
func (request *ResyncRequest) Validate() error {
	if len(request.Shop) == 0 {
		return errors.New("must specify shop")
	}
	if len(request.ResourceType) == 0 {
		return errors.New("must specify resource type")
	}
	if len(request.ResourceID) == 0 {
		return errors.New("must specify resource ID")
	}

	return nil
}

// NewResyncRequestFromReader creates a ResyncRequest from a Reader and
// validates it.
func NewResyncRequestFromReader(reader io.Reader) (*ResyncRequest, error) {
	var request ResyncRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode resync request")
	}

	err = request.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "resync request failed validation")
	}

	return &request, nil
}

// ProductWebhook is the subset of the product update webhook payload
// the sync pipeline cares about. The numeric ID is the bare catalog ID
// without the gid prefix.
type ProductWebhook struct {
	ID int64 `json:"id"`
}

// NewProductWebhookFromReader creates a ProductWebhook from a Reader.
func NewProductWebhookFromReader(reader io.Reader) (*ProductWebhook, error) {
	var payload ProductWebhook
	err := json.NewDecoder(reader).Decode(&payload)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode product webhook payload")
	}
	return &payload, nil
}
