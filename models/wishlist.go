package models

import "time"

type WishlistItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	AddedAt     time.Time `json:"added_at"`
}
