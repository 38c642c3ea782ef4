package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DeleteUser removes an account together with its cart lines and wishlist.
// Units held by the cart go back to stock. Orders keep their snapshots.
// A seller that still lists products cannot be deleted.
func (l *Ledger) DeleteUser(ctx context.Context, userID uint) error {
	released := 0
	err := l.transact(ctx, "delete_user", func(tx *gorm.DB) error {
		released = 0

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("fetch user %d: %w", userID, err)
		}

		var products int64
		if err := tx.Model(&models.Product{}).Where("seller_id = ?", userID).Count(&products).Error; err != nil {
			return fmt.Errorf("count products of user %d: %w", userID, err)
		}
		if products > 0 {
			return fmt.Errorf("user %d still lists %d products: %w", userID, products, ErrConflict)
		}

		var lines []models.CartLine
		if err := tx.Where("user_id = ?", userID).Order("id").Find(&lines).Error; err != nil {
			return fmt.Errorf("list cart of user %d: %w", userID, err)
		}
		for _, line := range lines {
			if err := dropLine(tx, line, models.MovementLineRemoved); err != nil {
				return err
			}
			released += line.Quantity
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error; err != nil {
			return fmt.Errorf("delete wishlist of user %d: %w", userID, err)
		}
		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Uint("user_id", userID).Int("units_released", released).Msg("🗑️ User deleted")
	return nil
}
