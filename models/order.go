package models

import (
	"strings"
	"time"
)

const (
	DefaultOrderStatus   = "Completed (Demo)"
	DefaultPaymentStatus = "Paid (Demo)"
	DefaultPaymentMethod = "SSLCommerz (Demo)"
)

// CustomerDetails are the shipping/billing details entered at checkout.
type CustomerDetails struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	UserName        string          `json:"user_name"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	Customer        CustomerDetails `gorm:"embedded;embeddedPrefix:customer_" json:"customer_details"`
	TransactionID   string          `gorm:"uniqueIndex;not null" json:"transaction_id"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `gorm:"type:VARCHAR(32)" json:"payment_status"`
	OrderStatus     string          `gorm:"type:VARCHAR(32)" json:"order_status"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `gorm:"index" json:"product_id"`
	SellerID    uint    `gorm:"index" json:"seller_id"`
	ProductName string  `json:"product_name"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

var orderStatuses = []string{
	"Pending",
	"Processing",
	"Shipped",
	"Delivered",
	"Cancelled",
	DefaultOrderStatus,
}

// ParseOrderStatus matches s case-insensitively against the known order statuses.
func ParseOrderStatus(s string) (string, bool) {
	for _, status := range orderStatuses {
		if strings.EqualFold(strings.TrimSpace(s), status) {
			return status, true
		}
	}
	return "", false
}
