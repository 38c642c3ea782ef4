package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateProductStatus approves or rejects a seller's product.
// PUT /admin/products/:id/status
func UpdateProductStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}

		var req ProductStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "Invalid request")
			return
		}
		status, ok := models.ParseProductStatus(req.Status)
		if !ok {
			respond.BadRequest(c, "Status must be one of pending, approved, rejected")
			return
		}

		var product models.Product
		if err := db.WithContext(c.Request.Context()).First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product", "code": "internal"})
			return
		}

		if err := db.WithContext(c.Request.Context()).Model(&product).Update("status", status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product status", "code": "internal"})
			return
		}

		log.Info().Uint("product_id", product.ID).Str("status", string(status)).Msg("✅ Product reviewed")
		c.JSON(http.StatusOK, gin.H{"message": "Product status updated", "product": product})
	}
}
