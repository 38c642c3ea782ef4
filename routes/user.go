package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
	wishlistControllers "github.com/junaidrashid-git/storefront-api/controllers/wishlist"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupUserRoutes registers all “/user/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken([]byte(d.Config.JWTSecret)))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/profile", userControllers.GetUser(d.DB))    // GET /user/profile
		userGroup.PUT("/profile", userControllers.UpdateUser(d.DB)) // PUT /user/profile

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(d.Ledger))               // GET /user/cart
			cartGroup.POST("", cartControllers.AddCartItem(d.Ledger))              // POST /user/cart
			cartGroup.PUT("/:lineID", cartControllers.UpdateCartItem(d.Ledger))    // PUT /user/cart/:lineID
			cartGroup.DELETE("/:lineID", cartControllers.DeleteCartItem(d.Ledger)) // DELETE /user/cart/:lineID
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(d.Ledger))
			wishlistGroup.POST("", wishlistControllers.AddToWishlist(d.Ledger))
			wishlistGroup.DELETE("/:itemID", wishlistControllers.RemoveFromWishlist(d.Ledger))
		}

		// ──────────────── Orders ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(d.Ledger)) // GET /user/orders
	}
}
