package models

import (
	"time"
)

type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"  // Awaiting admin review, also set after every seller edit
	ProductStatusApproved ProductStatus = "approved" // Visible in the public catalog
	ProductStatusRejected ProductStatus = "rejected"
)

// Availability is the stock record of a product.
// Sold counts units claimed by cart lines or order snapshots, not shipped units.
type Availability struct {
	Total     int `gorm:"not null;default:0" json:"total_quantity"`
	Remaining int `gorm:"not null;default:0" json:"remaining"`
	Sold      int `gorm:"not null;default:0" json:"sold"`
}

// NewAvailability returns the stock record of a freshly stocked product.
func NewAvailability(total int) Availability {
	return Availability{Total: total, Remaining: total, Sold: 0}
}

// Balanced reports whether remaining + sold == total.
func (a Availability) Balanced() bool {
	return a.Remaining+a.Sold == a.Total
}

type Product struct {
	ID                 uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID           uint          `gorm:"index;not null" json:"seller_id"`
	Name               string        `gorm:"not null" json:"name"`
	Description        string        `json:"description"`
	Category           string        `gorm:"index" json:"category"`
	Brand              string        `json:"brand"`
	ImageURL           string        `json:"image_url"`
	OriginalPrice      float64       `gorm:"not null" json:"original_price"`
	DiscountPercentage float64       `json:"discount_percentage"`
	Price              float64       `gorm:"not null" json:"price"` // Discounted unit price charged to buyers
	Currency           string        `gorm:"type:VARCHAR(8);default:'BDT'" json:"currency"`
	Status             ProductStatus `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
	Availability       Availability  `gorm:"embedded;embeddedPrefix:availability_" json:"availability"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// ApplyDiscount recomputes Price from OriginalPrice and DiscountPercentage.
func (p *Product) ApplyDiscount() {
	p.Price = p.OriginalPrice - p.OriginalPrice*(p.DiscountPercentage/100)
}

// ParseProductStatus maps a client string to a ProductStatus.
func ParseProductStatus(s string) (ProductStatus, bool) {
	switch ProductStatus(s) {
	case ProductStatusPending, ProductStatusApproved, ProductStatusRejected:
		return ProductStatus(s), true
	default:
		return "", false
	}
}
