package routes

import (
	"github.com/gin-gonic/gin"
	opsControllers "github.com/junaidrashid-git/storefront-api/controllers/ops"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupOpsRoutes registers health and “/ops/*” endpoints. Requires API‐Key middleware.
func SetupOpsRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", opsControllers.Health(d.Ledger))

	ops := r.Group("/ops")
	ops.Use(middleware.ValidateAPIKey(d.Config.OpsAPIKey))
	{
		ops.GET("/reconcile", opsControllers.Reconcile(d.Ledger))
		ops.POST("/reconcile", opsControllers.Reconcile(d.Ledger))
	}
}
