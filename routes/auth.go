package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(d.DB))
		authGroup.POST("/login", auth.Login(d.DB, d.Config))
		authGroup.POST("/logout", auth.Logout(d.Config))
	}
}

// SetupCatalogRoutes registers the public product browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	r.GET("/products", productcontroller.GetProducts(d.DB))        // GET /products
	r.GET("/products/:id", productcontroller.GetProductByID(d.DB)) // GET /products/:id
}
