// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConnect_SQLite(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	cfg := &Config{
		Type:       "sqlite",
		SQLitePath: dbPath,
		LogLevel:   logger.Silent,
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	// Test connection
	err = Ping(db)
	assert.NoError(t, err)

	// Cleanup
	err = Close(db)
	assert.NoError(t, err)
}

func TestConnect_InvalidType(t *testing.T) {
	cfg := &Config{
		Type:     "mysql",
		LogLevel: logger.Silent,
	}

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestConnect_CreatesSQLiteDir(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "subdir", "another", "test.db")

	db, err := Connect(&Config{
		Type:       "sqlite",
		SQLitePath: dbPath,
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConnect_SQLiteForeignKeysEnabled(t *testing.T) {
	db := testDB(t)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestMigrate(t *testing.T) {
	db := testDB(t)

	err := Migrate(db)
	require.NoError(t, err)

	for _, table := range []string{"users", "products", "orders"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	err = CreateIndexes(db)
	assert.NoError(t, err)
	assert.True(t, db.Migrator().HasIndex("products", "idx_products_category_active"))
}

func TestDropAllTables(t *testing.T) {
	db := testDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, DropAllTables(db))

	assert.False(t, db.Migrator().HasTable("orders"))
	assert.False(t, db.Migrator().HasTable("products"))
	assert.False(t, db.Migrator().HasTable("users"))
}
