// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Constants defining the states of a catalog crawl.
const (
	SyncStateNotStarted = "sync-not-started"
	SyncStateInProgress = "sync-in-progress"
	SyncStateComplete   = "sync-complete"
)

// SyncProcess is the resume checkpoint of a full catalog crawl for one
// resource type within one shop. Cursor is the opaque pagination token
// of the last completed page; an empty cursor means the crawl starts
// from the beginning.
type SyncProcess struct {
	Shop         string
	ResourceType string
	Cursor       string
	HasNext      bool
}

// State derives the crawl state from the checkpoint without storing a
// separate state attribute in the database.
func (p *SyncProcess) State() string {
	if p.HasNext {
		return SyncStateInProgress
	}
	return SyncStateComplete
}

// SyncStatus provides a container for returning the state with the
// SyncProcess to the client.
type SyncStatus struct {
	SyncProcess

	State string
}

// NewSyncStatusFromReader creates a SyncStatus from a Reader.
func NewSyncStatusFromReader(reader io.Reader) (*SyncStatus, error) {
	var status SyncStatus
	err := json.NewDecoder(reader).Decode(&status)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode sync status")
	}
	return &status, nil
}
