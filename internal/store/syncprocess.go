package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/shoploc/shoploc/model"
)

// SyncProcessTableName holds the resume checkpoints of full catalog
// crawls.
const SyncProcessTableName = "SyncProcess"

// syncProcessRow exists because the checkpoint column is named
// EndCursor in the database; CURSOR is reserved in Postgres.
type syncProcessRow struct {
	Shop         string
	ResourceType string
	EndCursor    string
	HasNext      bool
}

func (r *syncProcessRow) toSyncProcess() *model.SyncProcess {
	return &model.SyncProcess{
		Shop:         r.Shop,
		ResourceType: r.ResourceType,
		Cursor:       r.EndCursor,
		HasNext:      r.HasNext,
	}
}

var syncProcessSelect sq.SelectBuilder

func init() {
	syncProcessSelect = sq.
		Select(
			"Shop",
			"ResourceType",
			"EndCursor",
			"HasNext",
		).
		From(SyncProcessTableName)
}

// GetSyncProcess fetches the crawl checkpoint for one resource type,
// returning nil when the crawl was never started.
func (sqlStore *SQLStore) GetSyncProcess(shop, resourceType string) (*model.SyncProcess, error) {
	row := new(syncProcessRow)
	err := sqlStore.getBuilder(sqlStore.db, row,
		syncProcessSelect.
			Where("Shop = ?", shop).
			Where("ResourceType = ?", resourceType))

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get sync process")
	}

	return row.toSyncProcess(), nil
}

// ListInProgressSyncProcesses returns every checkpoint that still has
// pages left to crawl.
func (sqlStore *SQLStore) ListInProgressSyncProcesses() ([]*model.SyncProcess, error) {
	var rows []*syncProcessRow
	err := sqlStore.selectBuilder(sqlStore.db, &rows,
		syncProcessSelect.
			Where("HasNext = ?", true).
			OrderBy("Shop ASC", "ResourceType ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list in-progress sync processes")
	}

	processes := make([]*model.SyncProcess, 0, len(rows))
	for _, row := range rows {
		processes = append(processes, row.toSyncProcess())
	}

	return processes, nil
}

// UpsertSyncProcess writes the crawl checkpoint, replacing any
// existing one for the same (shop, resourceType). Each crawl tick ends
// with this write, so an interrupted crawl resumes from the last
// completed page.
func (sqlStore *SQLStore) UpsertSyncProcess(process *model.SyncProcess) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(SyncProcessTableName).
		SetMap(map[string]interface{}{
			"Shop":         process.Shop,
			"ResourceType": process.ResourceType,
			"EndCursor":    process.Cursor,
			"HasNext":      process.HasNext,
		}).
		Suffix(`ON CONFLICT (Shop, ResourceType) DO UPDATE SET
			EndCursor = EXCLUDED.EndCursor,
			HasNext = EXCLUDED.HasNext`),
	)
	return errors.Wrapf(err, "failed to upsert sync process for %s", process.ResourceType)
}
