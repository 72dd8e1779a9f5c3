package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/middleware"
	"github.com/HaiderNafees/ElysianThreads/models"
)

// RemoveItem deletes a cart entry.
func RemoveItem(c *gin.Context) {
	session, _, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Please log in to continue"))
		return
	}

	if _, err := session.Cart.Remove(c.Param("productId")); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to remove item"))
		return
	}

	lines, subtotal, status := session.Cart.Lines()
	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "Removed from cart", gin.H{
		"items":    lines,
		"subtotal": subtotal,
		"status":   status.String(),
	}))
}
