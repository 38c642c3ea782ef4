// Package databasetest provides a migrated in-memory database for tests.
package databasetest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/junaidrashid-git/storefront-api/database"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens a fresh in-memory SQLite database with every table migrated.
// The pool is pinned to one connection so the whole test sees one database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SeedUser inserts a user with the given role.
func SeedUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	u := models.User{Email: email, Name: email, PasswordHash: "x", Role: role, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// SeedProduct inserts an approved product stocked with total units.
func SeedProduct(t *testing.T, db *gorm.DB, sellerID uint, name string, price float64, total int) models.Product {
	t.Helper()
	p := models.Product{
		SellerID:      sellerID,
		Name:          name,
		OriginalPrice: price,
		Price:         price,
		Currency:      "BDT",
		Status:        models.ProductStatusApproved,
		Availability:  models.NewAvailability(total),
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Availability reloads the stock record of a product.
func Availability(t *testing.T, db *gorm.DB, productID uint) models.Availability {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, productID).Error)
	return p.Availability
}
