package models

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	Role         Role      `gorm:"type:VARCHAR(16);not null;default:'user'" json:"role"`
	Phone        string    `json:"phone"`
	ShopName     string    `json:"shop_name,omitempty"` // Sellers only
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	Address      Address   `gorm:"embedded" json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address model embedded in User
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}
