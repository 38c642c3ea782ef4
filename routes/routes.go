package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	"github.com/junaidrashid-git/storefront-api/config"
	"github.com/junaidrashid-git/storefront-api/eventbus"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"gorm.io/gorm"
)

// Deps carries everything the handlers are built from.
type Deps struct {
	Config    config.Config
	DB        *gorm.DB
	Ledger    *ledger.Ledger
	Hub       *orderControllers.Hub
	Publisher eventbus.Publisher
}

// SetupRoutes is the single entry‐point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Public auth + catalog routes (no middleware)
	SetupAuthRoutes(r, d)
	SetupCatalogRoutes(r, d)

	// 2️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, d)
	SetupOrderRoutes(r, d)

	// 3️⃣ Seller and admin routes (JWT + role)
	SetupSellerRoutes(r, d)
	SetupAdminRoutes(r, d)

	// 4️⃣ Operator routes (API‐Key‐protected)
	SetupOpsRoutes(r, d)
}
