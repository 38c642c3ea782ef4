package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DELETE /seller/products/:id
func DeleteSellerProduct(db *gorm.DB, l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}
		if err := l.DeleteProduct(c.Request.Context(), product.ID); err != nil {
			respond.Error(c, err)
			return
		}
		log.Info().Uint("product_id", product.ID).Msg("🗑️ Product deleted by seller")
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// DELETE /admin/products/:id
func DeleteProduct(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}
		if err := l.DeleteProduct(c.Request.Context(), id); err != nil {
			respond.Error(c, err)
			return
		}
		log.Info().Uint("product_id", id).Msg("🗑️ Product deleted by admin")
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
