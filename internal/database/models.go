// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"time"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// Order statuses
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// User represents a marketplace account (customer, seller or admin)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:customer;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Products []Product `gorm:"foreignKey:SellerID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// Product represents a catalog item. Products are never hard-deleted;
// IsActive=false removes them from customer-facing listings.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Category      string    `gorm:"index;not null" json:"category"`
	Price         float64   `gorm:"not null" json:"price"`
	Stock         int       `gorm:"default:10" json:"stock"`
	Description   string    `gorm:"type:text" json:"description"`
	ImageFilename string    `json:"image_filename"`
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	SellerID      *uint     `gorm:"index" json:"seller_id,omitempty"`

	// Foreign key relationships
	Seller *User   `gorm:"foreignKey:SellerID" json:"-"`
	Orders []Order `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// Order represents one purchased product line for a customer
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Quantity  int       `gorm:"default:1;not null" json:"quantity"`
	Status    string    `gorm:"default:Pending;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`

	// Foreign key relationships
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderLine is the flat (customer, product) projection of an order row
// consumed by the interaction extractor
type OrderLine struct {
	CustomerID uint
	ProductID  uint
}
