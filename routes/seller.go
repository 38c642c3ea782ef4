package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	sellerControllers "github.com/junaidrashid-git/storefront-api/controllers/seller"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
)

// SetupSellerRoutes registers all “/seller/*” endpoints. Requires a seller token.
func SetupSellerRoutes(r *gin.Engine, d Deps) {
	sellerGroup := r.Group("/seller")
	sellerGroup.Use(middleware.ValidateToken([]byte(d.Config.JWTSecret)), middleware.RequireRole(models.RoleSeller))
	{
		// ─────────── Product Management ───────────
		products := sellerGroup.Group("/products")
		{
			products.GET("", productcontroller.GetSellerProducts(d.DB))
			products.POST("", productcontroller.CreateProduct(d.DB))
			products.GET("/:id", productcontroller.GetSellerProduct(d.DB))
			products.PUT("/:id", productcontroller.UpdateProduct(d.DB, d.Ledger))
			products.PUT("/:id/stock", productcontroller.UpdateStock(d.Ledger))
			products.DELETE("/:id", productcontroller.DeleteSellerProduct(d.DB, d.Ledger))
		}

		// ─────────── Orders ───────────
		sellerGroup.GET("/orders", orderControllers.GetSellerOrdersHandler(d.Ledger))
		sellerGroup.GET("/orders/ws", orderControllers.OrderWebSocketHandler(d.Hub))

		sellerGroup.GET("/dashboard", sellerControllers.GetDashboard(d.DB))
	}
}
