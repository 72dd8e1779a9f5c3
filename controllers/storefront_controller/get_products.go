package storefront_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
)

// GetProducts lists storefront products with optional category, color,
// fabric and price-range filters plus sorting. An empty result is a normal
// response with count 0, not an error.
func GetProducts(c *gin.Context) {
	cat := catalog.Default()
	filters := parseFilters(c, cat)
	sortKey := models.ParseSortKey(c.DefaultQuery("sortBy", string(models.SortNewest)))

	products := catalog.Derive(cat.Products(), filters, sortKey)

	c.JSON(http.StatusOK, models.ListResponse(c, "Products fetched successfully", products, len(products)))
}
