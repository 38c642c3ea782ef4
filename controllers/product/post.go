package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name               string  `json:"name" binding:"required"`
	Description        string  `json:"description"`
	Category           string  `json:"category" binding:"required"`
	Brand              string  `json:"brand"`
	ImageURL           string  `json:"image_url"`
	OriginalPrice      float64 `json:"original_price" binding:"required,gt=0"`
	DiscountPercentage float64 `json:"discount_percentage" binding:"gte=0,lte=100"`
	Currency           string  `json:"currency"`
	TotalQuantity      *int    `json:"total_quantity" binding:"required,min=0"`
}

func (in ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Category = in.Category
	p.Brand = in.Brand
	p.ImageURL = in.ImageURL
	p.OriginalPrice = in.OriginalPrice
	p.DiscountPercentage = in.DiscountPercentage
	if in.Currency != "" {
		p.Currency = in.Currency
	}
	p.ApplyDiscount()
}

// CreateProduct stocks a new product. It waits in pending until an admin approves it.
// POST /seller/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, _ := middleware.CurrentUserID(c)

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		product := models.Product{
			SellerID:     sellerID,
			Currency:     "BDT",
			Status:       models.ProductStatusPending,
			Availability: models.NewAvailability(*input.TotalQuantity),
		}
		input.apply(&product)

		if err := db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
			respond.Error(c, err)
			return
		}
		log.Info().Uint("product_id", product.ID).Uint("seller_id", sellerID).Msg("📦 Product created")
		c.JSON(http.StatusCreated, product)
	}
}
