package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken([]byte(d.Config.JWTSecret)))
	{
		// Checkout: turns cart lines into an order
		orders.POST("", orderControllers.PlaceOrderHandler(d.Ledger, d.Hub, d.Publisher))
	}
}
