package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

// AddToCart claims quantity units of a product for the user's cart, creating
// the line or growing an existing one.
func (l *Ledger) AddToCart(ctx context.Context, userID, productID uint, quantity int) (Result, error) {
	if userID == 0 {
		return Result{}, ErrUnauthenticated
	}
	if quantity < 1 {
		return Result{}, fmt.Errorf("quantity must be at least 1: %w", ErrInvalidInput)
	}

	var result Result
	err := l.transact(ctx, "add_to_cart", func(tx *gorm.DB) error {
		product, err := findProduct(tx, productID)
		if err != nil {
			return err
		}
		if err := requireApproved(product); err != nil {
			return err
		}
		if product.Availability.Remaining < quantity {
			return fmt.Errorf("product %d has %d remaining, %d requested: %w",
				productID, product.Availability.Remaining, quantity, ErrInsufficientStock)
		}
		if err := claim(tx, productID, quantity); err != nil {
			return err
		}

		var line models.CartLine
		err = tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&line).Error
		switch {
		case err == nil:
			res := tx.Model(&models.CartLine{}).
				Where("id = ? AND quantity = ?", line.ID, line.Quantity).
				Updates(map[string]interface{}{"quantity": line.Quantity + quantity})
			if err := checkLineWrite(tx, res, line); err != nil {
				return err
			}
			line.Quantity += quantity
			result = Result{Status: StatusUpdated, Line: &line}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.CartLine{
				UserID:      userID,
				ProductID:   product.ID,
				SellerID:    product.SellerID,
				ProductName: product.Name,
				ImageURL:    product.ImageURL,
				Price:       product.Price,
				Quantity:    quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				// Another request created the line first; the retry takes the update path.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("cart line for product %d created concurrently: %w", productID, ErrStockConflict)
				}
				return fmt.Errorf("create cart line: %w", err)
			}
			result = Result{Status: StatusCreated, Line: &line}
		default:
			return fmt.Errorf("fetch cart line: %w", err)
		}

		reason := models.MovementAddToCart
		if result.Status == StatusUpdated {
			reason = models.MovementQuantityIncrease
		}
		return journal(tx, line, quantity, reason)
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// SetQuantity sets a cart line to newQuantity, claiming or releasing the
// difference. Zero removes the line.
func (l *Ledger) SetQuantity(ctx context.Context, userID, lineID uint, newQuantity int) (Result, error) {
	if userID == 0 {
		return Result{}, ErrUnauthenticated
	}
	if newQuantity < 0 {
		return Result{}, fmt.Errorf("quantity must not be negative: %w", ErrInvalidInput)
	}

	var result Result
	err := l.transact(ctx, "set_quantity", func(tx *gorm.DB) error {
		line, err := findLine(tx, userID, lineID)
		if err != nil {
			return err
		}

		delta := newQuantity - line.Quantity
		switch {
		case newQuantity == 0:
			if err := dropLine(tx, line, models.MovementLineRemoved); err != nil {
				return err
			}
			result = Result{Status: StatusRemoved}
			return nil

		case delta == 0:
			result = Result{Status: StatusUpdated, Line: &line}
			return nil

		case delta > 0:
			product, err := findProduct(tx, line.ProductID)
			if err != nil {
				return err
			}
			if err := requireApproved(product); err != nil {
				return err
			}
			if product.Availability.Remaining < delta {
				return fmt.Errorf("product %d has %d remaining, %d more requested: %w",
					line.ProductID, product.Availability.Remaining, delta, ErrInsufficientStock)
			}
			if err := claim(tx, line.ProductID, delta); err != nil {
				return err
			}

		default:
			if err := release(tx, line.ProductID, -delta); err != nil {
				return err
			}
		}

		res := tx.Model(&models.CartLine{}).
			Where("id = ? AND quantity = ?", line.ID, line.Quantity).
			Updates(map[string]interface{}{"quantity": newQuantity})
		if err := checkLineWrite(tx, res, line); err != nil {
			return err
		}

		reason := models.MovementQuantityIncrease
		if delta < 0 {
			reason = models.MovementQuantityDecrease
		}
		if err := journal(tx, line, delta, reason); err != nil {
			return err
		}
		line.Quantity = newQuantity
		result = Result{Status: StatusUpdated, Line: &line}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// RemoveLine releases a whole cart line and deletes it.
func (l *Ledger) RemoveLine(ctx context.Context, userID, lineID uint) (Result, error) {
	if userID == 0 {
		return Result{}, ErrUnauthenticated
	}
	err := l.transact(ctx, "remove_line", func(tx *gorm.DB) error {
		line, err := findLine(tx, userID, lineID)
		if err != nil {
			return err
		}
		return dropLine(tx, line, models.MovementLineRemoved)
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Status: StatusRemoved}, nil
}

// Cart lists the user's cart lines, newest first.
func (l *Ledger) Cart(ctx context.Context, userID uint) ([]models.CartLine, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	lines := []models.CartLine{}
	if err := l.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return lines, nil
}

func dropLine(tx *gorm.DB, line models.CartLine, reason models.MovementReason) error {
	if err := release(tx, line.ProductID, line.Quantity); err != nil {
		return err
	}
	res := tx.Where("id = ? AND quantity = ?", line.ID, line.Quantity).Delete(&models.CartLine{})
	if err := checkLineWrite(tx, res, line); err != nil {
		return err
	}
	return journal(tx, line, -line.Quantity, reason)
}

func findLine(tx *gorm.DB, userID, lineID uint) (models.CartLine, error) {
	var line models.CartLine
	if err := tx.Where("id = ? AND user_id = ?", lineID, userID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return line, fmt.Errorf("cart line %d: %w", lineID, ErrNotFound)
		}
		return line, fmt.Errorf("fetch cart line %d: %w", lineID, err)
	}
	return line, nil
}
