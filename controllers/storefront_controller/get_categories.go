package storefront_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
)

func GetCategories(c *gin.Context) {
	categories := catalog.Default().Categories()
	c.JSON(http.StatusOK, models.ListResponse(c, "Categories fetched successfully", categories, len(categories)))
}
