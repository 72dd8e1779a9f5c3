package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/middleware"
	"github.com/HaiderNafees/ElysianThreads/models"
)

// GetCart returns the live cart joined against the catalog, with the sync
// status so a client can tell "still subscribing" from "empty".
func GetCart(c *gin.Context) {
	session, _, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Please log in to continue"))
		return
	}

	lines, subtotal, status := session.Cart.Lines()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched successfully", gin.H{
		"items":    lines,
		"subtotal": subtotal,
		"status":   status.String(),
	}))
}
