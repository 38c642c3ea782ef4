package wishlistControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

type AddWishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /user/wishlist
func GetWishlist(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		items, err := l.Wishlist(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /user/wishlist
func AddToWishlist(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input AddWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		item, err := l.AddToWishlist(c.Request.Context(), userID, input.ProductID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": ledger.StatusCreated, "item": item})
	}
}

// DELETE /user/wishlist/:itemID
func RemoveFromWishlist(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		itemID, ok := respond.IDParam(c, "itemID")
		if !ok {
			return
		}

		if err := l.RemoveFromWishlist(c.Request.Context(), userID, itemID); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": ledger.StatusRemoved})
	}
}
