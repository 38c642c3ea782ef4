package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// claim moves n units from remaining to sold, only if n units are still remaining.
func claim(tx *gorm.DB, productID uint, n int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND availability_remaining >= ?", productID, n).
		Updates(map[string]interface{}{
			"availability_remaining": gorm.Expr("availability_remaining - ?", n),
			"availability_sold":      gorm.Expr("availability_sold + ?", n),
		})
	if res.Error != nil {
		return fmt.Errorf("claim stock for product %d: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("claim %d units of product %d: %w", n, productID, ErrStockConflict)
	}
	return nil
}

// release moves n units from sold back to remaining. A product that no longer
// exists is skipped, there is nothing left to give the units back to.
func release(tx *gorm.DB, productID uint, n int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND availability_sold >= ?", productID, n).
		Updates(map[string]interface{}{
			"availability_remaining": gorm.Expr("availability_remaining + ?", n),
			"availability_sold":      gorm.Expr("availability_sold - ?", n),
		})
	if res.Error != nil {
		return fmt.Errorf("release stock for product %d: %w", productID, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return fmt.Errorf("check product %d: %w", productID, err)
	}
	if count == 0 {
		log.Warn().Uint("product_id", productID).Int("units", n).Msg("Releasing stock of a deleted product, skipped")
		return nil
	}
	log.Error().Uint("product_id", productID).Int("units", n).Msg("❌ Release would drive sold below zero, rolling back")
	return fmt.Errorf("release %d units of product %d: %w", n, productID, ErrInternalInconsistency)
}

// checkLineWrite interprets the outcome of a cart line write guarded by the
// quantity that was read. Stock has already moved when this runs.
func checkLineWrite(tx *gorm.DB, res *gorm.DB, line models.CartLine) error {
	if res.Error != nil {
		return fmt.Errorf("write cart line %d: %w", line.ID, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.CartLine{}).Where("id = ?", line.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check cart line %d: %w", line.ID, err)
	}
	if count > 0 {
		return fmt.Errorf("cart line %d quantity changed: %w", line.ID, ErrStockConflict)
	}
	log.Error().
		Uint("line_id", line.ID).
		Uint("user_id", line.UserID).
		Uint("product_id", line.ProductID).
		Msg("❌ Cart line vanished after stock moved, rolling back")
	return fmt.Errorf("cart line %d vanished: %w", line.ID, ErrInternalInconsistency)
}

func journal(tx *gorm.DB, line models.CartLine, delta int, reason models.MovementReason) error {
	mv := models.StockMovement{
		ProductID:  line.ProductID,
		UserID:     line.UserID,
		CartLineID: line.ID,
		Delta:      delta,
		Reason:     reason,
	}
	if err := tx.Create(&mv).Error; err != nil {
		return fmt.Errorf("journal stock movement: %w", err)
	}
	return nil
}

func findProduct(tx *gorm.DB, productID uint) (models.Product, error) {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return product, fmt.Errorf("fetch product %d: %w", productID, err)
	}
	return product, nil
}

// requireApproved hides products that are not listed in the catalog. Lines
// already in a cart can still shrink or be removed.
func requireApproved(p models.Product) error {
	if p.Status != models.ProductStatusApproved {
		return fmt.Errorf("product %d is %s: %w", p.ID, p.Status, ErrNotFound)
	}
	return nil
}

// SetTotalQuantity changes a seller's stocked quantity. Units already claimed
// stay claimed, so remaining becomes max(0, total - sold).
func (l *Ledger) SetTotalQuantity(ctx context.Context, sellerID, productID uint, total int) (*models.Product, error) {
	if sellerID == 0 {
		return nil, ErrUnauthenticated
	}
	if total < 0 {
		return nil, fmt.Errorf("total quantity must not be negative: %w", ErrInvalidInput)
	}

	var product models.Product
	err := l.transact(ctx, "set_total_quantity", func(tx *gorm.DB) error {
		p, err := findProduct(tx, productID)
		if err != nil {
			return err
		}
		if p.SellerID != sellerID {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}

		remaining := total - p.Availability.Sold
		if remaining < 0 {
			remaining = 0
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND availability_sold = ?", productID, p.Availability.Sold).
			Updates(map[string]interface{}{
				"availability_total":     total,
				"availability_remaining": remaining,
			})
		if res.Error != nil {
			return fmt.Errorf("update stock of product %d: %w", productID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("sold count of product %d changed: %w", productID, ErrStockConflict)
		}

		if err := journal(tx, models.CartLine{ProductID: productID, UserID: sellerID}, 0, models.MovementRestock); err != nil {
			return err
		}

		p.Availability.Total = total
		p.Availability.Remaining = remaining
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if product.Availability.Sold > total {
		log.Warn().Uint("product_id", productID).Int("total", total).Int("sold", product.Availability.Sold).
			Msg("Total set below claimed units")
	}
	return &product, nil
}

// DeleteProduct removes a product with its cart lines and wishlist entries.
// Order snapshots are kept.
func (l *Ledger) DeleteProduct(ctx context.Context, productID uint) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findProduct(tx, productID); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.CartLine{}).Error; err != nil {
			return fmt.Errorf("delete cart lines of product %d: %w", productID, err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.WishlistItem{}).Error; err != nil {
			return fmt.Errorf("delete wishlist items of product %d: %w", productID, err)
		}
		if err := tx.Delete(&models.Product{}, productID).Error; err != nil {
			return fmt.Errorf("delete product %d: %w", productID, err)
		}
		return nil
	})
}
