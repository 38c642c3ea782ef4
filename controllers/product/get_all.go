package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"name":       "name",
	"remaining":  "availability_remaining",
	"sold":       "availability_sold",
}

// filterProducts applies the catalog query parameters shared by every
// product listing. It answers 400 and returns false on a bad parameter.
func filterProducts(c *gin.Context, query *gorm.DB) (*gorm.DB, bool) {
	search := strings.TrimSpace(c.Query("search"))
	category := c.Query("category")
	minPriceStr := c.Query("min_price")
	maxPriceStr := c.Query("max_price")
	sortBy := c.DefaultQuery("sort_by", "created_at")
	sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	if search != "" {
		likePattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
			likePattern, likePattern, likePattern)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if minPriceStr != "" {
		mp, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil {
			respond.BadRequest(c, "Invalid min_price")
			return nil, false
		}
		query = query.Where("price >= ?", mp)
	}
	if maxPriceStr != "" {
		mp, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			respond.BadRequest(c, "Invalid max_price")
			return nil, false
		}
		query = query.Where("price <= ?", mp)
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		respond.BadRequest(c, "Invalid sort_by")
		return nil, false
	}
	return query.Order(fmt.Sprintf("%s %s, id %s", column, sortOrder, sortOrder)), true
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.WithContext(c.Request.Context()).Model(&models.Product{}).
			Where("status = ?", models.ProductStatusApproved)
		query, ok := filterProducts(c, query)
		if !ok {
			return
		}

		products := []models.Product{}
		if err := query.Find(&products).Error; err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /seller/products
func GetSellerProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, _ := middleware.CurrentUserID(c)
		query := db.WithContext(c.Request.Context()).Model(&models.Product{}).Where("seller_id = ?", sellerID)
		query, ok := filterProducts(c, query)
		if !ok {
			return
		}

		products := []models.Product{}
		if err := query.Find(&products).Error; err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /admin/products?status=pending
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.WithContext(c.Request.Context()).Model(&models.Product{})
		if s := c.Query("status"); s != "" {
			status, ok := models.ParseProductStatus(s)
			if !ok {
				respond.BadRequest(c, "Invalid status")
				return
			}
			query = query.Where("status = ?", status)
		}
		query, ok := filterProducts(c, query)
		if !ok {
			return
		}

		products := []models.Product{}
		if err := query.Find(&products).Error; err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
