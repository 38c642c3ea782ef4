package eventbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
)

type OrderPlacedItem struct {
	ProductID uint    `json:"product_id"`
	SellerID  uint    `json:"seller_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderPlacedEvent struct {
	EventID       string            `json:"event_id"`
	OrderID       uint              `json:"order_id"`
	UserID        uint              `json:"user_id"`
	TransactionID string            `json:"transaction_id"`
	TotalAmount   float64           `json:"total_amount"`
	Items         []OrderPlacedItem `json:"items"`
	Timestamp     time.Time         `json:"timestamp"`
}

func NewOrderPlacedEvent(order models.Order) OrderPlacedEvent {
	items := make([]OrderPlacedItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderPlacedItem{
			ProductID: it.ProductID,
			SellerID:  it.SellerID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return OrderPlacedEvent{
		EventID:       uuid.NewString(),
		OrderID:       order.ID,
		UserID:        order.UserID,
		TransactionID: order.TransactionID,
		TotalAmount:   order.TotalAmount,
		Items:         items,
		Timestamp:     time.Now().UTC(),
	}
}
