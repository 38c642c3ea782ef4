package orderControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/eventbus"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /orders
func PlaceOrderHandler(l *ledger.Ledger, hub *Hub, pub eventbus.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var req ledger.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		order, err := l.PlaceOrder(c.Request.Context(), userID, req)
		if err != nil {
			respond.Error(c, err)
			return
		}
		log.Info().Uint("order_id", order.ID).Uint("user_id", userID).Str("transaction_id", order.TransactionID).
			Msg("🧾 Order placed")

		hub.Broadcast(eventbus.RoutingKeyOrderPlaced, *order)

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
		defer cancel()
		if err := pub.Publish(ctx, eventbus.RoutingKeyOrderPlaced, eventbus.NewOrderPlacedEvent(*order)); err != nil {
			log.Error().Err(err).Uint("order_id", order.ID).Msg("❌ Failed to publish order event")
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":        "Order placed successfully",
			"order":          order,
			"transaction_id": order.TransactionID,
		})
	}
}

// GET /user/orders
func GetUserOrdersHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		orders, err := l.Orders(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /seller/orders
func GetSellerOrdersHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, _ := middleware.CurrentUserID(c)
		orders, err := l.SellerOrders(c.Request.Context(), sellerID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := l.AllOrders(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:id/status
func UpdateOrderStatusHandler(l *ledger.Ledger, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		order, err := l.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
		if err != nil {
			respond.Error(c, err)
			return
		}
		hub.Broadcast("order.updated", *order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}
