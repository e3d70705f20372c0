// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Editorial statuses of a single translated field. These track review
// progress only; the mirrored content lives in Translation rows and has
// an independent lifecycle.
const (
	StateStatusNotTranslated  = "not_translated"
	StateStatusInProgress     = "in_progress"
	StateStatusConfirmed      = "confirmed"
	StateStatusNeedsAttention = "needs_attention"
)

// Structural tiers a state row can belong to. Coarser than the
// resource types on Translation rows: everything that is not part of a
// product family is recorded as a product-tier row.
const (
	StateResourceProduct     = "product"
	StateResourceOption      = "option"
	StateResourceOptionValue = "option_value"
)

// TranslationState records the editorial status of one translated
// field. PreviousValue is the source value snapshotted when the
// merchant last confirmed the translation; comparing it against the
// live source detects upstream drift.
type TranslationState struct {
	Shop            string
	ResourceID      string
	Field           string
	Locale          string
	Market          string
	ResourceType    string
	ParentProductID string
	Status          string
	PreviousValue   string
}

// Validate validates the values of a translation state.
func (s *TranslationState) Validate() error {
	if len(s.Shop) == 0 {
		return errors.New("must specify shop")
	}
	if len(s.ResourceID) == 0 {
		return errors.New("must specify resource ID")
	}
	if len(s.Field) == 0 {
		return errors.New("must specify field")
	}
	if len(s.Locale) == 0 {
		return errors.New("must specify locale")
	}
	switch s.Status {
	case StateStatusNotTranslated, StateStatusInProgress, StateStatusConfirmed, StateStatusNeedsAttention:
	default:
		return errors.Errorf("invalid status %q", s.Status)
	}

	return nil
}

// StateLookup is the result of looking up a state row. Absence of a
// row is meaningful ("never touched by an editor") and distinct from a
// stored not_translated status, so the two are kept apart until the
// caller decides to normalize.
type StateLookup struct {
	Found bool
	State TranslationState
}

// StatusOrDefault normalizes an absent row to not_translated.
func (l StateLookup) StatusOrDefault() string {
	if !l.Found {
		return StateStatusNotTranslated
	}
	return l.State.Status
}

// DetectDrift demotes a confirmed status to needs_attention when the
// live source value no longer matches the value seen at confirmation.
// All other statuses pass through unchanged.
func DetectDrift(status, previousValue, currentSource string) string {
	if status == StateStatusConfirmed && previousValue != currentSource {
		return StateStatusNeedsAttention
	}
	return status
}

// stateTier maps a state resource type to its review-order tier.
func stateTier(resourceType string) int {
	switch resourceType {
	case StateResourceProduct:
		return 0
	case StateResourceOption:
		return 1
	case StateResourceOptionValue:
		return 2
	}
	return 3
}

// SortStateFamily orders the aggregated state rows of a product family
// the way the editor reviews them: product rows first, then options,
// then option values, alphabetically by field within each tier.
func SortStateFamily(states []*TranslationState) {
	sort.SliceStable(states, func(i, j int) bool {
		ti, tj := stateTier(states[i].ResourceType), stateTier(states[j].ResourceType)
		if ti != tj {
			return ti < tj
		}
		if states[i].Field != states[j].Field {
			return states[i].Field < states[j].Field
		}
		return states[i].ResourceID < states[j].ResourceID
	})
}

// NewTranslationStateFromReader creates a TranslationState from a
// Reader and validates it.
func NewTranslationStateFromReader(reader io.Reader) (*TranslationState, error) {
	var state TranslationState
	err := json.NewDecoder(reader).Decode(&state)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode translation state")
	}

	err = state.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "translation state failed validation")
	}

	return &state, nil
}

// NewTranslationStateListFromReader creates a list of TranslationStates
// from a Reader.
func NewTranslationStateListFromReader(reader io.Reader) ([]*TranslationState, error) {
	var states []*TranslationState
	err := json.NewDecoder(reader).Decode(&states)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode translation state list")
	}
	return states, nil
}
