package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

// AddToWishlist records interest in a product. It never touches stock.
func (l *Ledger) AddToWishlist(ctx context.Context, userID, productID uint) (*models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	db := l.db.WithContext(ctx)

	product, err := findProduct(db, productID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check wishlist: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("product %d already in wishlist: %w", productID, ErrConflict)
	}

	item := models.WishlistItem{
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		AddedAt:     time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("product %d already in wishlist: %w", productID, ErrConflict)
		}
		return nil, fmt.Errorf("add to wishlist: %w", err)
	}
	return &item, nil
}

func (l *Ledger) RemoveFromWishlist(ctx context.Context, userID, itemID uint) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	res := l.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.WishlistItem{})
	if res.Error != nil {
		return fmt.Errorf("remove wishlist item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wishlist item %d: %w", itemID, ErrNotFound)
	}
	return nil
}

func (l *Ledger) Wishlist(ctx context.Context, userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	items := []models.WishlistItem{}
	if err := l.db.WithContext(ctx).Where("user_id = ?", userID).Order("added_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}
