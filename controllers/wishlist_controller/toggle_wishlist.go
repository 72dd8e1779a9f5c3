package wishlist_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/middleware"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
)

// ToggleWishlist flips a product's saved state and reports the new value.
func ToggleWishlist(c *gin.Context) {
	session, _, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Please log in to continue"))
		return
	}

	_, favorite, err := session.Wishlist.Toggle(c.Param("productId"))
	if err != nil {
		if errors.Is(err, services.ErrUnknownProduct) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update wishlist"))
		return
	}

	message := "Removed from wishlist"
	if favorite {
		message = "Added to wishlist"
	}
	c.JSON(http.StatusAccepted, models.SuccessResponse(c, message, gin.H{
		"favorite": favorite,
	}))
}
