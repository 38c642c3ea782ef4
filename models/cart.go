package models

import "time"

// CartLine is one (user, product) pairing. Price, name and image are
// snapshotted when the line is first created.
type CartLine struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_cart_lines_user_product" json:"user_id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_cart_lines_user_product;index" json:"product_id"`
	SellerID    uint      `gorm:"index" json:"seller_id"`
	ProductName string    `json:"product_name"`
	ImageURL    string    `json:"image_url"`
	Price       float64   `json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
