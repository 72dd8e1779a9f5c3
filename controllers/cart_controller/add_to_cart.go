package cart_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/middleware"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// AddToCart puts a product in the cart. The write is optimistic: the
// response reflects local state immediately and the live subscription
// reconciles it with server truth.
func AddToCart(c *gin.Context) {
	session, _, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Please log in to continue"))
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request payload"))
		return
	}

	if _, err := session.Cart.Add(req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Quantity must be at least 1"))
		case errors.Is(err, services.ErrUnknownProduct):
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add to cart"))
		}
		return
	}

	lines, subtotal, status := session.Cart.Lines()
	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "Added to cart", gin.H{
		"items":    lines,
		"subtotal": subtotal,
		"status":   status.String(),
	}))
}
