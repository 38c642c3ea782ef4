package eventbus

import (
	"context"
	"testing"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderPlacedEvent(t *testing.T) {
	order := models.Order{
		ID:            7,
		UserID:        3,
		TransactionID: "TXN_abc",
		TotalAmount:   42.5,
		Items: []models.OrderItem{
			{ProductID: 1, SellerID: 9, Quantity: 2, Price: 10},
			{ProductID: 2, SellerID: 9, Quantity: 1, Price: 22.5},
		},
	}

	ev := NewOrderPlacedEvent(order)
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, uint(7), ev.OrderID)
	assert.Equal(t, "TXN_abc", ev.TransactionID)
	require.Len(t, ev.Items, 2)
	assert.Equal(t, OrderPlacedItem{ProductID: 2, SellerID: 9, Quantity: 1, Price: 22.5}, ev.Items[1])
	assert.False(t, ev.Timestamp.IsZero())

	assert.NotEqual(t, ev.EventID, NewOrderPlacedEvent(order).EventID)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), RoutingKeyOrderPlaced, OrderPlacedEvent{}))
	p.Close()
}
