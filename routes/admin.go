package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/storefront-api/controllers/admin"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires an admin token.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken([]byte(d.Config.JWTSecret)), middleware.RequireRole(models.RoleAdmin))
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", adminController.GetAllUsers(d.DB))
		adminGroup.PUT("/users/:id", adminController.UpdateUser(d.DB))
		adminGroup.DELETE("/users/:id", adminController.DeleteUser(d.Ledger))

		// ─────────── Product Review ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetAllProducts(d.DB))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB))
			productAdmin.PUT("/:id/status", adminController.UpdateProductStatus(d.DB))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.Ledger))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.Ledger))
			orderAdmin.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(d.Ledger, d.Hub))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler(d.Hub))
		}
	}
}
