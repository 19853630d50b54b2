// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Catalog exposes the product and order queries consumed by the
// recommendation subsystem and the web layer
type Catalog struct {
	db *gorm.DB
}

// NewCatalog creates a new catalog over an open database connection
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ProductByID fetches a single product by primary key.
// Returns (nil, nil) when the product does not exist.
func (c *Catalog) ProductByID(id uint) (*Product, error) {
	var product Product
	err := c.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// ProductsByIDs fetches the products matching the given identifiers.
// Result order is unspecified; callers needing a particular order must
// reorder themselves.
func (c *Catalog) ProductsByIDs(ids []uint, activeOnly bool) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := c.db.Where("id IN ?", ids)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by ids: %w", err)
	}
	return products, nil
}

// ProductsByCategory returns the most recently created active products
// sharing a category, excluding one product (the one being viewed)
func (c *Catalog) ProductsByCategory(category string, excludeID uint, limit int) ([]Product, error) {
	var products []Product
	err := c.db.
		Where("category = ?", category).
		Where("id <> ?", excludeID).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}
	return products, nil
}

// RecentActiveProducts returns the most recently created active
// products across the whole catalog
func (c *Catalog) RecentActiveProducts(limit int) ([]Product, error) {
	var products []Product
	err := c.db.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent products: %w", err)
	}
	return products, nil
}

// AllOrderLines returns one (customer, product) pair per historical
// order row
func (c *Catalog) AllOrderLines() ([]OrderLine, error) {
	var lines []OrderLine
	err := c.db.Model(&Order{}).
		Select("user_id AS customer_id, product_id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read order lines: %w", err)
	}
	return lines, nil
}

// HasOrders reports whether the orders table exists in the connected
// store. The extractor refuses to run against a store that was never
// migrated.
func (c *Catalog) HasOrders() bool {
	return c.db.Migrator().HasTable(&Order{})
}
