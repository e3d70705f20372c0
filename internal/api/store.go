package api

import "github.com/shoploc/shoploc/model"

type Store interface {
	SearchTranslations(request *model.SearchRequest) (*model.SearchResult, error)
	GetTranslation(shop, resourceID, field, locale, market string) (*model.Translation, error)
	UpsertTranslations(translations []*model.Translation) error

	GetSyncProcess(shop, resourceType string) (*model.SyncProcess, error)
	UpsertSyncProcess(process *model.SyncProcess) error

	EnqueueSync(shop, resourceType, resourceID string) error
	ResetSyncQueue(shop string) error

	GetTranslationState(shop, resourceID, field, locale, market string) (model.StateLookup, error)
	UpsertTranslationState(state *model.TranslationState) error
	DeleteTranslationState(shop, resourceID, field, locale, market string) error
	GetTranslationStatesByParentProduct(shop, parentProductID, locale, market string) ([]*model.TranslationState, error)
}
