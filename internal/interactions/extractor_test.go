// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package interactions

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bazaarlabs/bazaar/internal/database"
)

func testDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()

	db, err := database.Connect(&database.Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	if migrate {
		require.NoError(t, database.Migrate(db))
	}
	return db
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExport_MissingStore(t *testing.T) {
	db := testDB(t, false)
	extractor := NewExtractor(database.NewCatalog(db), zap.NewNop())

	path := filepath.Join(t.TempDir(), "interactions.csv")
	_, err := extractor.Export(path)
	require.ErrorIs(t, err, ErrDataSourceMissing)

	// No partial output
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExport_WritesAllOrderLines(t *testing.T) {
	db := testDB(t, true)

	user := database.User{Name: "Dev", Email: "dev@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	products := []database.Product{
		{Name: "Mouse", Category: "Electronics", Price: 899, IsActive: true},
		{Name: "Keyboard", Category: "Electronics", Price: 3499, IsActive: true},
	}
	require.NoError(t, db.Create(&products).Error)
	orders := []database.Order{
		{ProductID: products[0].ID, UserID: user.ID, Quantity: 1},
		{ProductID: products[1].ID, UserID: user.ID, Quantity: 1},
	}
	require.NoError(t, db.Create(&orders).Error)

	extractor := NewExtractor(database.NewCatalog(db), zap.NewNop())
	path := filepath.Join(t.TempDir(), "interactions.csv")

	rows, err := extractor.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	records := readCSV(t, path)
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, []string{"customer_id", "product_id"}, records[0])
}

func TestExport_OverwritesPreviousExport(t *testing.T) {
	db := testDB(t, true)

	user := database.User{Name: "Dev", Email: "dev@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	product := database.Product{Name: "Mouse", Category: "Electronics", Price: 899, IsActive: true}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&database.Order{ProductID: product.ID, UserID: user.ID}).Error)

	extractor := NewExtractor(database.NewCatalog(db), zap.NewNop())
	path := filepath.Join(t.TempDir(), "interactions.csv")

	// Stale export with rows that no longer exist
	require.NoError(t, os.WriteFile(path, []byte("customer_id,product_id\n99,99\n99,98\n"), 0644))

	rows, err := extractor.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.NotEqual(t, "99", records[1][0])
}

func TestExport_EmptyOrders(t *testing.T) {
	db := testDB(t, true)
	extractor := NewExtractor(database.NewCatalog(db), zap.NewNop())

	path := filepath.Join(t.TempDir(), "interactions.csv")
	rows, err := extractor.Export(path)
	require.NoError(t, err)
	assert.Zero(t, rows)

	// Header-only file is still written: an empty export is valid input
	// for the builder, which then declines to train
	records := readCSV(t, path)
	require.Len(t, records, 1)
}
