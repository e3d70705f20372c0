package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/shoploc/shoploc/model"
)

// SyncQueueTableName holds the queue of targeted resync requests.
const SyncQueueTableName = "SyncTranslations"

var syncItemSelect sq.SelectBuilder

func init() {
	syncItemSelect = sq.
		Select(
			"Shop",
			"ResourceType",
			"ResourceID",
			"Status",
			"CreateAt",
		).
		From(SyncQueueTableName)
}

// EnqueueSync creates a pending work item for the resource, or resets
// an already-known item back to pending so it is picked up again.
func (sqlStore *SQLStore) EnqueueSync(shop, resourceType, resourceID string) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(SyncQueueTableName).
		SetMap(map[string]interface{}{
			"Shop":         shop,
			"ResourceType": resourceType,
			"ResourceID":   resourceID,
			"Status":       model.SyncItemPending,
			"CreateAt":     model.Timestamp(),
		}).
		Suffix(`ON CONFLICT (Shop, ResourceType, ResourceID) DO UPDATE SET
			Status = EXCLUDED.Status`),
	)
	return errors.Wrapf(err, "failed to enqueue sync of %s %s", resourceType, resourceID)
}

// NextPendingSync returns the oldest pending work item, or nil when
// the queue is drained.
func (sqlStore *SQLStore) NextPendingSync() (*model.SyncItem, error) {
	item := new(model.SyncItem)
	err := sqlStore.getBuilder(sqlStore.db, item,
		syncItemSelect.
			Where("Status = ?", model.SyncItemPending).
			OrderBy("CreateAt ASC").
			Limit(1))

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get next pending sync item")
	}

	return item, nil
}

// MarkSyncDone advances the item past pending so it is not picked up
// again. Processed items are retained; only Status = 0 rows are ever
// queried for work.
func (sqlStore *SQLStore) MarkSyncDone(item *model.SyncItem) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Update(SyncQueueTableName).
		SetMap(map[string]interface{}{
			"Status": model.SyncItemDone,
		}).
		Where("Shop = ?", item.Shop).
		Where("ResourceType = ?", item.ResourceType).
		Where("ResourceID = ?", item.ResourceID),
	)
	return errors.Wrapf(err, "failed to mark sync of %s %s done", item.ResourceType, item.ResourceID)
}

// ResetSyncQueue flips every processed item for the shop back to
// pending, used when a crawl restart should also replay targeted
// resyncs.
func (sqlStore *SQLStore) ResetSyncQueue(shop string) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Update(SyncQueueTableName).
		SetMap(map[string]interface{}{
			"Status": model.SyncItemPending,
		}).
		Where("Shop = ?", shop),
	)
	return errors.Wrapf(err, "failed to reset sync queue for %s", shop)
}
