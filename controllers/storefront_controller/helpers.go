package storefront_controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
)

// parseFilters builds a FilterState from query params, defaulting every
// dimension to cleared and the price range to the full catalog span.
func parseFilters(c *gin.Context, cat *catalog.Store) models.FilterState {
	filters := models.NewFilterState(cat.MaxPrice())

	if v := c.Query("category"); v != "" {
		filters.Category = v
	}
	if v := c.Query("color"); v != "" {
		filters.Color = v
	}
	if v := c.Query("fabric"); v != "" {
		filters.Fabric = v
	}
	if v := c.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = f
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = f
		}
	}
	return filters
}
