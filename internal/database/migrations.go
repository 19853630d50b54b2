// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AllModels returns all database models for migration
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Order{},
	}
}

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// DropAllTables drops all tables (use with caution!)
func DropAllTables(db *gorm.DB) error {
	// Drop in reverse order to avoid foreign key constraints
	models := []interface{}{
		&Order{},
		&Product{},
		&User{},
	}

	for _, model := range models {
		if err := db.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}

	return nil
}

// CreateIndexes creates additional indexes for better query performance
func CreateIndexes(db *gorm.DB) error {
	// Composite indexes for the catalog queries behind the
	// recommendation fallback tiers
	indexes := []struct {
		table   string
		columns []string
		name    string
	}{
		{
			table:   "products",
			columns: []string{"category", "is_active"},
			name:    "idx_products_category_active",
		},
		{
			table:   "products",
			columns: []string{"is_active", "created_at"},
			name:    "idx_products_active_created",
		},
		{
			table:   "orders",
			columns: []string{"user_id", "product_id"},
			name:    "idx_orders_user_product",
		},
	}

	for _, idx := range indexes {
		// Check if index exists
		hasIndex := db.Migrator().HasIndex(idx.table, idx.name)
		if !hasIndex {
			// Create the index using raw SQL (GORM doesn't support composite indexes well)
			sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				idx.name,
				idx.table,
				joinColumns(idx.columns))

			if err := db.Exec(sql).Error; err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}
	}

	return nil
}

// joinColumns joins column names with commas
func joinColumns(columns []string) string {
	result := ""
	for i, col := range columns {
		if i > 0 {
			result += ", "
		}
		result += col
	}
	return result
}
