package sellerControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardOverview struct {
	ShopName       string  `json:"shop_name"`
	TotalProducts  int64   `json:"total_products"`
	ActiveListings int64   `json:"active_listings"`
	PendingReview  int64   `json:"pending_review"`
	UnitsStocked   int     `json:"units_stocked"`
	UnitsRemaining int     `json:"units_remaining"`
	UnitsClaimed   int     `json:"units_claimed"`
	UnitsInCarts   int     `json:"units_in_carts"`
	OrdersToday    int64   `json:"new_orders_today"`
	SalesThisMonth float64 `json:"total_sales_month"`
}

type stockTotals struct {
	Total     int
	Remaining int
	Sold      int
}

type orderLine struct {
	Price    float64
	Quantity int
}

// GET /seller/dashboard
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, _ := middleware.CurrentUserID(c)
		db := db.WithContext(c.Request.Context())

		var seller models.User
		if err := db.First(&seller, sellerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Seller not found", "code": "not_found"})
			return
		}
		overview := DashboardOverview{ShopName: seller.ShopName}

		products := db.Model(&models.Product{}).Where("seller_id = ?", sellerID)
		var totals stockTotals
		err := products.Session(&gorm.Session{}).Count(&overview.TotalProducts).Error
		if err == nil {
			err = products.Session(&gorm.Session{}).Where("status = ?", models.ProductStatusApproved).Count(&overview.ActiveListings).Error
		}
		if err == nil {
			err = products.Session(&gorm.Session{}).Where("status = ?", models.ProductStatusPending).Count(&overview.PendingReview).Error
		}
		if err == nil {
			err = products.Session(&gorm.Session{}).
				Select("COALESCE(SUM(availability_total), 0) AS total, " +
					"COALESCE(SUM(availability_remaining), 0) AS remaining, " +
					"COALESCE(SUM(availability_sold), 0) AS sold").
				Scan(&totals).Error
		}
		if err == nil {
			err = db.Model(&models.CartLine{}).Where("seller_id = ?", sellerID).
				Select("COALESCE(SUM(quantity), 0)").Scan(&overview.UnitsInCarts).Error
		}

		today := time.Now().Truncate(24 * time.Hour)
		if err == nil {
			err = db.Model(&models.Order{}).
				Where("created_at >= ? AND id IN (?)", today,
					db.Model(&models.OrderItem{}).Select("order_id").Where("seller_id = ?", sellerID)).
				Count(&overview.OrdersToday).Error
		}

		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		var lines []orderLine
		if err == nil {
			err = db.Model(&models.OrderItem{}).
				Select("order_items.price, order_items.quantity").
				Joins("JOIN orders ON orders.id = order_items.order_id").
				Where("order_items.seller_id = ? AND orders.created_at >= ?", sellerID, monthStart).
				Scan(&lines).Error
		}
		if err != nil {
			log.Error().Err(err).Uint("seller_id", sellerID).Msg("❌ Failed to build dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch seller dashboard data", "code": "internal"})
			return
		}

		sales := decimal.Zero
		for _, l := range lines {
			sales = sales.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		overview.SalesThisMonth = sales.Round(2).InexactFloat64()
		overview.UnitsStocked = totals.Total
		overview.UnitsRemaining = totals.Remaining
		overview.UnitsClaimed = totals.Sold

		c.JSON(http.StatusOK, overview)
	}
}
