package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// totalTolerance is how far the client's total may drift from the server's.
var totalTolerance = decimal.NewFromFloat(0.01)

type OrderItemInput struct {
	ProductID   uint    `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Items           []OrderItemInput       `json:"items" binding:"required,min=1,dive"`
	TotalAmount     float64                `json:"total_amount" binding:"required"`
	CustomerDetails models.CustomerDetails `json:"customer_details" binding:"required"`
	PaymentMethod   string                 `json:"payment_method"`
	OrderStatus     string                 `json:"order_status"`
	PaymentStatus   string                 `json:"payment_status"`
}

// PlaceOrder turns cart lines into an order. Each item must be backed by a cart
// line holding at least the ordered quantity; prices come from the cart snapshot.
// The units were claimed when they entered the cart, so stock is not touched
// here: the consumed cart quantity is carried by the order item instead.
func (l *Ledger) PlaceOrder(ctx context.Context, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order has no items: %w", ErrInvalidInput)
	}
	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("quantity for product %d must be at least 1: %w", item.ProductID, ErrInvalidInput)
		}
		if seen[item.ProductID] {
			return nil, fmt.Errorf("product %d listed twice: %w", item.ProductID, ErrInvalidInput)
		}
		seen[item.ProductID] = true
	}

	var order models.Order
	err := l.transact(ctx, "place_order", func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrUnauthenticated)
			}
			return fmt.Errorf("fetch user %d: %w", userID, err)
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		lines := make([]models.CartLine, 0, len(req.Items))
		for _, in := range req.Items {
			var line models.CartLine
			err := tx.Where("user_id = ? AND product_id = ?", userID, in.ProductID).First(&line).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d is not in the cart: %w", in.ProductID, ErrInvalidInput)
			}
			if err != nil {
				return fmt.Errorf("fetch cart line: %w", err)
			}
			if line.Quantity < in.Quantity {
				return fmt.Errorf("cart holds %d of product %d, %d ordered: %w",
					line.Quantity, in.ProductID, in.Quantity, ErrInvalidInput)
			}

			total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(in.Quantity))))
			items = append(items, models.OrderItem{
				ProductID:   line.ProductID,
				SellerID:    line.SellerID,
				ProductName: line.ProductName,
				ImageURL:    line.ImageURL,
				Price:       line.Price,
				Quantity:    in.Quantity,
			})
			lines = append(lines, line)
		}

		if total.Sub(decimal.NewFromFloat(req.TotalAmount)).Abs().GreaterThan(totalTolerance) {
			return fmt.Errorf("total %.2f does not match cart total %s: %w",
				req.TotalAmount, total.StringFixed(2), ErrInvalidInput)
		}

		order = models.Order{
			UserID:        userID,
			UserName:      user.Name,
			Items:         items,
			TotalAmount:   total.Round(2).InexactFloat64(),
			Customer:      req.CustomerDetails,
			TransactionID: "TXN_" + uuid.NewString(),
			PaymentMethod: orDefault(req.PaymentMethod, models.DefaultPaymentMethod),
			PaymentStatus: orDefault(req.PaymentStatus, models.DefaultPaymentStatus),
			OrderStatus:   orDefault(req.OrderStatus, models.DefaultOrderStatus),
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i, line := range lines {
			ordered := items[i].Quantity
			var res *gorm.DB
			if ordered == line.Quantity {
				res = tx.Where("id = ? AND quantity = ?", line.ID, line.Quantity).Delete(&models.CartLine{})
			} else {
				res = tx.Model(&models.CartLine{}).
					Where("id = ? AND quantity = ?", line.ID, line.Quantity).
					Updates(map[string]interface{}{"quantity": line.Quantity - ordered})
			}
			if err := checkLineWrite(tx, res, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (l *Ledger) Orders(ctx context.Context, userID uint) ([]models.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	orders := []models.Order{}
	if err := l.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// SellerOrders lists orders containing the seller's products. Only the
// seller's own items are loaded.
func (l *Ledger) SellerOrders(ctx context.Context, sellerID uint) ([]models.Order, error) {
	if sellerID == 0 {
		return nil, ErrUnauthenticated
	}
	db := l.db.WithContext(ctx)
	orders := []models.Order{}
	sub := db.Model(&models.OrderItem{}).Select("order_id").Where("seller_id = ?", sellerID)
	if err := db.Preload("Items", "seller_id = ?", sellerID).
		Where("id IN (?)", sub).
		Order("created_at desc, id desc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list seller orders: %w", err)
	}
	return orders, nil
}

func (l *Ledger) AllOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := l.db.WithContext(ctx).Preload("Items").Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (l *Ledger) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	canonical, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrInvalidInput)
	}

	db := l.db.WithContext(ctx)
	res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("order_status", canonical)
	if res.Error != nil {
		return nil, fmt.Errorf("update order %d: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, fmt.Errorf("reload order %d: %w", orderID, err)
	}
	return &order, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
