package storefront_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
)

func GetCategoryByID(c *gin.Context) {
	category, ok := catalog.Default().Category(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category fetched successfully", category))
}
