package recommendation_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
)

type recommendationsRequest struct {
	BrowsingHistory []string `json:"browsingHistory"`
}

// GetRecommendations asks the generator for product suggestions based on
// the shopper's browsing history. Unknown product IDs in the reply are
// dropped, so the result is always a subset of the catalog.
func GetRecommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request payload"))
		return
	}

	result, err := services.Recommendations().Recommend(c.Request.Context(), req.BrowsingHistory)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Recommendation service unavailable"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Recommendations generated", result))
}
