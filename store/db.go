package store

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// DB records simulation runs in a sqlite database. Only population counts
// are stored, never grid contents.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and brings its schema up to date.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Open] failed to open database: %+v", path)
	}
	// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrapf(err, "[Open] failed to migrate database: %+v", path)
	}

	return db, nil
}
