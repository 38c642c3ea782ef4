package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

type StockInput struct {
	TotalQuantity *int `json:"total_quantity" binding:"required,min=0"`
}

// UpdateProduct edits product details and stock. Any edit sends the product
// back to pending for re-approval.
// PUT /seller/products/:id
func UpdateProduct(db *gorm.DB, l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		if *input.TotalQuantity != product.Availability.Total {
			updated, err := l.SetTotalQuantity(c.Request.Context(), product.SellerID, product.ID, *input.TotalQuantity)
			if err != nil {
				respond.Error(c, err)
				return
			}
			product.Availability = updated.Availability
		}

		input.apply(&product)
		product.Status = models.ProductStatusPending
		// Counters are owned by the ledger, never written back from here.
		if err := db.WithContext(c.Request.Context()).Model(&product).
			Select("name", "description", "category", "brand", "image_url", "original_price",
				"discount_percentage", "price", "currency", "status", "updated_at").
			Updates(&product).Error; err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully and is pending re-approval", "product": product})
	}
}

// UpdateStock changes only the stocked quantity.
// PUT /seller/products/:id/stock
func UpdateStock(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, _ := middleware.CurrentUserID(c)
		id, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}

		var input StockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		product, err := l.SetTotalQuantity(c.Request.Context(), sellerID, id, *input.TotalQuantity)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": product.ID, "availability": product.Availability})
	}
}
