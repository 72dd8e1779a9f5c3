package wishlist_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/middleware"
	"github.com/HaiderNafees/ElysianThreads/models"
)

// GetWishlist returns the saved products resolved against the catalog.
func GetWishlist(c *gin.Context) {
	session, _, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Please log in to continue"))
		return
	}

	products, status := session.Wishlist.Products()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wishlist fetched successfully", gin.H{
		"items":  products,
		"status": status.String(),
	}))
}
