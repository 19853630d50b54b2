// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Seed resets all tables and inserts a small demo marketplace: a few
// accounts, a multi-category catalog and orders with overlapping
// customer baskets, so a fresh database can exercise the whole
// extract/train/recommend pipeline.
func Seed(db *gorm.DB) error {
	if err := DropAllTables(db); err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}
	if err := CreateIndexes(db); err != nil {
		return err
	}

	base := time.Now().Add(-30 * 24 * time.Hour)

	users := []User{
		{Name: "Asha Mehta", Email: "asha@example.com", PasswordHash: demoHash, Role: RoleSeller},
		{Name: "Ravi Kumar", Email: "ravi@example.com", PasswordHash: demoHash, Role: RoleSeller},
		{Name: "Priya Nair", Email: "priya@example.com", PasswordHash: demoHash, Role: RoleCustomer},
		{Name: "Dev Sharma", Email: "dev@example.com", PasswordHash: demoHash, Role: RoleCustomer},
		{Name: "Meera Iyer", Email: "meera@example.com", PasswordHash: demoHash, Role: RoleCustomer},
		{Name: "Admin", Email: "admin@example.com", PasswordHash: demoHash, Role: RoleAdmin},
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	asha := users[0].ID
	ravi := users[1].ID

	products := []Product{
		{Name: "Wireless Mouse", Category: "Electronics", Price: 899, Stock: 40, SellerID: &asha},
		{Name: "Mechanical Keyboard", Category: "Electronics", Price: 3499, Stock: 25, SellerID: &asha},
		{Name: "USB-C Hub", Category: "Electronics", Price: 1599, Stock: 30, SellerID: &asha},
		{Name: "Laptop Stand", Category: "Electronics", Price: 1299, Stock: 15, SellerID: &ravi},
		{Name: "Running Shoes", Category: "Sports", Price: 2799, Stock: 20, SellerID: &ravi},
		{Name: "Yoga Mat", Category: "Sports", Price: 699, Stock: 50, SellerID: &ravi},
		{Name: "Water Bottle", Category: "Sports", Price: 349, Stock: 60, SellerID: &ravi},
		{Name: "Cotton Kurta", Category: "Clothing", Price: 999, Stock: 35, SellerID: &asha},
		{Name: "Denim Jacket", Category: "Clothing", Price: 2199, Stock: 12, SellerID: &asha},
		{Name: "Ceramic Mug Set", Category: "Home", Price: 549, Stock: 45, SellerID: &ravi},
	}
	for i := range products {
		// Stagger creation times so recency ordering is deterministic
		products[i].CreatedAt = base.Add(time.Duration(i) * 24 * time.Hour)
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	// Overlapping baskets: mouse+keyboard and mouse+hub are frequent
	// co-purchases, shoes+mat shows up twice, the rest is noise.
	baskets := map[int][]int{
		2: {0, 1, 2}, // priya: mouse, keyboard, hub
		3: {0, 1, 5}, // dev: mouse, keyboard, yoga mat
		4: {4, 5, 9}, // meera: shoes, yoga mat, mug set
	}
	extra := [][2]int{
		{2, 4}, // priya: shoes
		{2, 5}, // priya: yoga mat
		{3, 2}, // dev: hub
	}

	var orders []Order
	for customer, items := range baskets {
		for _, item := range items {
			orders = append(orders, Order{
				ProductID: products[item].ID,
				UserID:    users[customer].ID,
				Quantity:  1,
				Status:    StatusDelivered,
			})
		}
	}
	for _, pair := range extra {
		orders = append(orders, Order{
			ProductID: products[pair[1]].ID,
			UserID:    users[pair[0]].ID,
			Quantity:  1,
			Status:    StatusDelivered,
		})
	}
	if err := db.Create(&orders).Error; err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	return nil
}

// Not a real credential; the demo accounts cannot log in anywhere.
const demoHash = "pbkdf2:sha256:demo$not-a-real-hash"
