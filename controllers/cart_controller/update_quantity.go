package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/middleware"
	"github.com/HaiderNafees/ElysianThreads/models"
)

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateQuantity changes a cart entry's quantity. A target below 1 is a
// client-side no-op: no remote write is issued and local state is left
// untouched.
func UpdateQuantity(c *gin.Context) {
	session, _, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Please log in to continue"))
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request payload"))
		return
	}

	mutation, err := session.Cart.SetQuantity(c.Param("productId"), *req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update quantity"))
		return
	}

	code := http.StatusAccepted
	message := "Quantity updated"
	if mutation == nil {
		// below 1 is a client-side no-op, nothing was written
		code = http.StatusOK
		message = "Quantity unchanged"
	}
	lines, subtotal, status := session.Cart.Lines()
	c.JSON(code, models.SuccessResponse(c, message, gin.H{
		"items":    lines,
		"subtotal": subtotal,
		"status":   status.String(),
	}))
}
