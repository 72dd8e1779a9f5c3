package storefront_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
)

// GetProductByID returns a single product detail page record.
func GetProductByID(c *gin.Context) {
	product, ok := catalog.Default().Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
