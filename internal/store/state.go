// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/shoploc/shoploc/model"
)

// StateTableName holds editorial translation states. Its lifecycle is
// driven by editor actions only; the sync pipeline never writes here.
const StateTableName = "TranslationStates"

var stateSelect sq.SelectBuilder

func init() {
	stateSelect = sq.
		Select(
			"Shop",
			"ResourceID",
			"Field",
			"Locale",
			"Market",
			"ResourceType",
			"ParentProductID",
			"Status",
			"PreviousValue",
		).
		From(StateTableName)
}

// GetTranslationState looks up the editorial state of a single field.
// Absence is reported through the lookup rather than being flattened
// into a default status.
func (sqlStore *SQLStore) GetTranslationState(shop, resourceID, field, locale, market string) (model.StateLookup, error) {
	var state model.TranslationState
	err := sqlStore.getBuilder(sqlStore.db, &state,
		stateSelect.
			Where("Shop = ?", shop).
			Where("ResourceID = ?", resourceID).
			Where("Field = ?", field).
			Where("Locale = ?", locale).
			Where("Market = ?", market))

	if err == sql.ErrNoRows {
		return model.StateLookup{}, nil
	} else if err != nil {
		return model.StateLookup{}, errors.Wrap(err, "failed to get translation state")
	}

	return model.StateLookup{Found: true, State: state}, nil
}

// UpsertTranslationState creates or replaces the editorial state of a
// single field.
func (sqlStore *SQLStore) UpsertTranslationState(state *model.TranslationState) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(StateTableName).
		SetMap(map[string]interface{}{
			"Shop":            state.Shop,
			"ResourceID":      state.ResourceID,
			"Field":           state.Field,
			"Locale":          state.Locale,
			"Market":          state.Market,
			"ResourceType":    state.ResourceType,
			"ParentProductID": state.ParentProductID,
			"Status":          state.Status,
			"PreviousValue":   state.PreviousValue,
		}).
		Suffix(`ON CONFLICT (Shop, ResourceID, Field, Locale, Market) DO UPDATE SET
			ResourceType = EXCLUDED.ResourceType,
			ParentProductID = EXCLUDED.ParentProductID,
			Status = EXCLUDED.Status,
			PreviousValue = EXCLUDED.PreviousValue`),
	)
	return errors.Wrapf(err, "failed to upsert translation state for %s/%s", state.ResourceID, state.Field)
}

// DeleteTranslationState removes the editorial state of a single
// field, used when a merchant clears an override.
func (sqlStore *SQLStore) DeleteTranslationState(shop, resourceID, field, locale, market string) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Delete(StateTableName).
		Where("Shop = ?", shop).
		Where("ResourceID = ?", resourceID).
		Where("Field = ?", field).
		Where("Locale = ?", locale).
		Where("Market = ?", market),
	)
	return errors.Wrapf(err, "failed to delete translation state for %s/%s", resourceID, field)
}

// GetTranslationStatesByParentProduct returns every state row of a
// product and its structural children, in review order. When no rows
// reference the id as a parent, the id is treated as a standalone
// resource, which makes the same call work for pages, articles and
// other non-product resources.
func (sqlStore *SQLStore) GetTranslationStatesByParentProduct(shop, parentProductID, locale, market string) ([]*model.TranslationState, error) {
	states, err := sqlStore.selectStates(shop, locale, market, sq.Eq{"ParentProductID": parentProductID})
	if err != nil {
		return nil, err
	}

	if len(states) == 0 {
		states, err = sqlStore.selectStates(shop, locale, market, sq.Eq{"ResourceID": parentProductID})
		if err != nil {
			return nil, err
		}
	}

	model.SortStateFamily(states)

	return states, nil
}

func (sqlStore *SQLStore) selectStates(shop, locale, market string, condition sq.Sqlizer) ([]*model.TranslationState, error) {
	builder := stateSelect.
		Where("Shop = ?", shop).
		Where(condition)
	if locale != "" {
		builder = builder.Where("Locale = ?", locale)
	}
	if market != "" {
		builder = builder.Where("Market = ?", market)
	}

	var states []*model.TranslationState
	err := sqlStore.selectBuilder(sqlStore.db, &states, builder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select translation states")
	}

	return states, nil
}
