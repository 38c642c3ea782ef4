package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

// GetProductByID returns an approved product.
// URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}

		var product models.Product
		err := db.WithContext(c.Request.Context()).
			Where("status = ?", models.ProductStatusApproved).
			First(&product, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "not_found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product", "code": "internal"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /seller/products/:id
func GetSellerProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// ownedProduct loads the :id product if it belongs to the calling seller.
func ownedProduct(c *gin.Context, db *gorm.DB) (models.Product, bool) {
	var product models.Product
	sellerID, _ := middleware.CurrentUserID(c)
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return product, false
	}

	err := db.WithContext(c.Request.Context()).Where("seller_id = ?", sellerID).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": "Product not found or you do not have permission to access it",
			"code":  "not_found",
		})
		return product, false
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product", "code": "internal"})
		return product, false
	}
	return product, true
}
