// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/blang/semver"
	"github.com/pkg/errors"
)

type migration struct {
	fromVersion   semver.Version
	toVersion     semver.Version
	migrationFunc func(execer) error
}

// migrations defines the set of migrations necessary to advance the database to the latest
// expected version.
//
// Note that the canonical schema is currently obtained by applying all migrations to an empty
// database.
var migrations = []migration{
	{semver.MustParse("0.0.0"), semver.MustParse("0.1.0"),
		func(e execer) error {
			_, err := e.Exec(`
				CREATE TABLE System (
						Key    VARCHAR(64) PRIMARY KEY,
						Value  VARCHAR(1024) NULL
				);
		`)
			if err != nil {
				return err
			}

			_, err = e.Exec(`
				CREATE TABLE Translations (
						Shop          TEXT NOT NULL,
						ResourceType  TEXT NOT NULL,
						ResourceID    TEXT NOT NULL,
						ParentID      TEXT NOT NULL,
						Field         TEXT NOT NULL,
						Locale        TEXT NOT NULL,
						Market        TEXT NOT NULL,
						Content       TEXT NOT NULL,
						Translation   TEXT NOT NULL,
						UpdatedAt     TEXT NOT NULL,
						PRIMARY KEY (Shop, ResourceID, Field, Locale, Market)
				);

				CREATE INDEX Translations_Parent ON Translations (Shop, ParentID);
				CREATE INDEX Translations_Search ON Translations (Shop, ResourceType, Locale);
		`)
			if err != nil {
				return err
			}

			_, err = e.Exec(`
				CREATE TABLE SyncProcess (
						Shop          TEXT NOT NULL,
						ResourceType  TEXT NOT NULL,
						EndCursor     TEXT NOT NULL,
						HasNext       BOOLEAN NOT NULL,
						PRIMARY KEY (Shop, ResourceType)
				);

				CREATE TABLE SyncTranslations (
						Shop          TEXT NOT NULL,
						ResourceType  TEXT NOT NULL,
						ResourceID    TEXT NOT NULL,
						Status        BigInt NOT NULL,
						CreateAt      BigInt NOT NULL,
						PRIMARY KEY (Shop, ResourceType, ResourceID)
				);
		`)
			if err != nil {
				return err
			}

			_, err = e.Exec(`
				CREATE TABLE TranslationStates (
						Shop             TEXT NOT NULL,
						ResourceID       TEXT NOT NULL,
						Field            TEXT NOT NULL,
						Locale           TEXT NOT NULL,
						Market           TEXT NOT NULL,
						ResourceType     TEXT NOT NULL,
						ParentProductID  TEXT NOT NULL,
						Status           TEXT NOT NULL,
						PreviousValue    TEXT NOT NULL,
						PRIMARY KEY (Shop, ResourceID, Field, Locale, Market)
				);

				CREATE INDEX TranslationStates_Parent ON TranslationStates (Shop, ParentProductID);
		`)
			return err
		},
	},
}

// Migrate advances the schema to the latest version, applying any
// pending migrations inside transactions.
func (sqlStore *SQLStore) Migrate() error {
	currentVersion, err := sqlStore.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if !m.fromVersion.EQ(currentVersion) {
			continue
		}

		tx, err := sqlStore.beginTransaction(sqlStore.db)
		if err != nil {
			return err
		}

		err = m.migrationFunc(tx)
		if err != nil {
			tx.RollbackUnlessCommitted()
			return errors.Wrapf(err, "failed to migrate schema from %s to %s", m.fromVersion, m.toVersion)
		}

		err = sqlStore.setCurrentVersion(tx, m.toVersion.String())
		if err != nil {
			tx.RollbackUnlessCommitted()
			return err
		}

		err = tx.Commit()
		if err != nil {
			return err
		}

		currentVersion = m.toVersion
		sqlStore.logger.Infof("Migrated schema to %s", currentVersion)
	}

	return nil
}

func (sqlStore *SQLStore) getCurrentVersion() (semver.Version, error) {
	systemExists, err := sqlStore.tableExists("system")
	if err != nil {
		return semver.Version{}, err
	}
	if !systemExists {
		return semver.MustParse("0.0.0"), nil
	}

	var versionString string
	err = sqlStore.getBuilder(sqlStore.db, &versionString,
		sq.Select("Value").From("System").Where("Key = ?", "Version"))
	if err == sql.ErrNoRows {
		return semver.MustParse("0.0.0"), nil
	} else if err != nil {
		return semver.Version{}, errors.Wrap(err, "failed to read schema version")
	}

	return semver.Parse(versionString)
}

func (sqlStore *SQLStore) setCurrentVersion(e execer, version string) error {
	_, err := sqlStore.exec(e, `
		INSERT INTO System (Key, Value) VALUES ('Version', $1)
		ON CONFLICT (Key) DO UPDATE SET Value = EXCLUDED.Value;
	`, version)
	return errors.Wrap(err, "failed to store schema version")
}
