package models

import "time"

type MovementReason string

const (
	MovementAddToCart        MovementReason = "add_to_cart"
	MovementQuantityIncrease MovementReason = "quantity_increase"
	MovementQuantityDecrease MovementReason = "quantity_decrease"
	MovementLineRemoved      MovementReason = "line_removed"
	MovementRestock          MovementReason = "restock"
)

// StockMovement journals every change to a product's sold counter.
// Delta is applied to Sold; Remaining moves by -Delta.
type StockMovement struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	CartLineID uint           `json:"cart_line_id"`
	Delta      int            `json:"delta"`
	Reason     MovementReason `gorm:"type:VARCHAR(32)" json:"reason"`
	CreatedAt  time.Time      `json:"created_at"`
}
