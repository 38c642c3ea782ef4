package opsControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/ledger"
)

// GET /ops/reconcile reports drift, POST /ops/reconcile also repairs it.
func Reconcile(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		repair := c.Request.Method == http.MethodPost
		drifts, err := l.Reconcile(c.Request.Context(), repair)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"repair": repair, "drift": drifts})
	}
}

// GET /healthz
func Health(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := l.DB().DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
