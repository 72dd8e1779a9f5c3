package storefront_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
)

// GetFilterMetadata returns the facet values the filter sidebar renders
// from: categories, distinct colors and fabrics, and the price bounds.
func GetFilterMetadata(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched successfully", catalog.Default().FilterMetadata()))
}
