package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/shoploc/shoploc/model"
)

// TranslationTableName is the table mirroring remote translation
// content.
const TranslationTableName = "Translations"

var translationSelect sq.SelectBuilder

func init() {
	translationSelect = sq.
		Select(
			"Shop",
			"ResourceType",
			"ResourceID",
			"ParentID",
			"Field",
			"Locale",
			"Market",
			"Content",
			"Translation",
			"UpdatedAt",
		).
		From(TranslationTableName)
}

// GetTranslation fetches a single mirrored row by its natural key,
// returning nil when no such row exists.
func (sqlStore *SQLStore) GetTranslation(shop, resourceID, field, locale, market string) (*model.Translation, error) {
	translation := new(model.Translation)
	err := sqlStore.getBuilder(sqlStore.db, translation,
		translationSelect.
			Where("Shop = ?", shop).
			Where("ResourceID = ?", resourceID).
			Where("Field = ?", field).
			Where("Locale = ?", locale).
			Where("Market = ?", market))

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get translation")
	}

	return translation, nil
}

// UpsertTranslations writes a batch of mirrored rows, replacing any
// existing row with the same (shop, resource, field, locale, market)
// key. Writes are whole-row snapshots so replaying a batch is
// harmless.
func (sqlStore *SQLStore) UpsertTranslations(translations []*model.Translation) error {
	if len(translations) == 0 {
		return nil
	}

	tx, err := sqlStore.beginTransaction(sqlStore.db)
	if err != nil {
		return err
	}
	defer tx.RollbackUnlessCommitted()

	for _, translation := range translations {
		_, err = sqlStore.execBuilder(tx, sq.
			Insert(TranslationTableName).
			SetMap(map[string]interface{}{
				"Shop":         translation.Shop,
				"ResourceType": translation.ResourceType,
				"ResourceID":   translation.ResourceID,
				"ParentID":     translation.ParentID,
				"Field":        translation.Field,
				"Locale":       translation.Locale,
				"Market":       translation.Market,
				"Content":      translation.Content,
				"Translation":  translation.Translation,
				"UpdatedAt":    translation.UpdatedAt,
			}).
			Suffix(`ON CONFLICT (Shop, ResourceID, Field, Locale, Market) DO UPDATE SET
				ResourceType = EXCLUDED.ResourceType,
				ParentID = EXCLUDED.ParentID,
				Content = EXCLUDED.Content,
				Translation = EXCLUDED.Translation,
				UpdatedAt = EXCLUDED.UpdatedAt`),
		)
		if err != nil {
			return errors.Wrapf(err, "failed to upsert translation for %s/%s", translation.ResourceID, translation.Field)
		}
	}

	return tx.Commit()
}

// ClearTranslations blanks the translation value of every row
// belonging to the resource or any of its structural children. Rows
// are kept so that fields whose translations were removed upstream
// still show up as untranslated rather than vanishing from search.
func (sqlStore *SQLStore) ClearTranslations(shop, resourceID string) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Update(TranslationTableName).
		SetMap(map[string]interface{}{
			"Translation": "",
			"UpdatedAt":   "",
		}).
		Where("Shop = ?", shop).
		Where(sq.Or{
			sq.Eq{"ResourceID": resourceID},
			sq.Eq{"ParentID": resourceID},
		}),
	)
	return errors.Wrapf(err, "failed to clear translations of %s", resourceID)
}

// SearchTranslations runs a paginated substring search over the
// mirrored translation values, optionally filtered by resource type
// and locale.
func (sqlStore *SQLStore) SearchTranslations(request *model.SearchRequest) (*model.SearchResult, error) {
	perPage := request.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := request.Page
	if page < 0 {
		page = 0
	}

	conditions := []sq.Sqlizer{
		sq.Eq{"Shop": request.Shop},
		sq.Expr("Translation ILIKE ?", "%"+request.Keyword+"%"),
	}
	if len(request.ResourceTypes) > 0 {
		conditions = append(conditions, sq.Eq{"ResourceType": request.ResourceTypes})
	}
	if len(request.Locales) > 0 {
		conditions = append(conditions, sq.Eq{"Locale": request.Locales})
	}

	countBuilder := sq.Select("Count(*)").From(TranslationTableName)
	rowsBuilder := translationSelect
	for _, condition := range conditions {
		countBuilder = countBuilder.Where(condition)
		rowsBuilder = rowsBuilder.Where(condition)
	}

	result := &model.SearchResult{}
	err := sqlStore.getBuilder(sqlStore.db, &result.Total, countBuilder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count search matches")
	}

	err = sqlStore.selectBuilder(sqlStore.db, &result.Rows,
		rowsBuilder.
			OrderBy("ResourceType ASC", "ResourceID ASC", "Field ASC", "Locale ASC", "Market ASC").
			Limit(uint64(perPage)).
			Offset(uint64(page*perPage)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search translations")
	}

	return result, nil
}
