package db

import (
	_ "embed"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on
// disk, creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		// get-or-create lookups miss constantly; the default
		// logger would print every one
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	if err := gdb.Exec("pragma foreign_keys = on").Error; err != nil {
		return nil, fmt.Errorf("error enabling foreign keys at '%s': %w", filename, err)
	}
	if err := gdb.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return &DB{gdb}, nil
}

func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// WithTx runs fn inside a single transaction, committing if fn returns
// nil and rolling back otherwise. The migration driver uses one
// transaction per user so a failed user leaves no partial rows behind.
func (db *DB) WithTx(fn func(tx *DB) error) error {
	return db.Transaction(func(gdb *gorm.DB) error {
		return fn(&DB{gdb})
	})
}
