package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

type AddCartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type SetQuantityInput struct {
	// Pointer so an explicit 0 is distinguishable from a missing field.
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// GET /user/cart
func GetUserCart(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		lines, err := l.Cart(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// POST /user/cart
func AddCartItem(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		res, err := l.AddToCart(c.Request.Context(), userID, input.ProductID, input.Quantity)
		if err != nil {
			respond.Error(c, err)
			return
		}

		status := http.StatusOK
		if res.Status == ledger.StatusCreated {
			status = http.StatusCreated
		}
		c.JSON(status, res)
	}
}

// PUT /user/cart/:lineID
func UpdateCartItem(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		lineID, ok := respond.IDParam(c, "lineID")
		if !ok {
			return
		}

		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		res, err := l.SetQuantity(c.Request.Context(), userID, lineID, *input.Quantity)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// DELETE /user/cart/:lineID
func DeleteCartItem(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		lineID, ok := respond.IDParam(c, "lineID")
		if !ok {
			return
		}

		res, err := l.RemoveLine(c.Request.Context(), userID, lineID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
