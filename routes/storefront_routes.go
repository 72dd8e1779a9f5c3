package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/controllers/recommendation_controller"
	"github.com/HaiderNafees/ElysianThreads/controllers/storefront_controller"
)

// SetupStorefrontRoutes sets up the public catalog routes
func SetupStorefrontRoutes(router *gin.RouterGroup) {
	store := router.Group("/store")

	products := store.Group("/products")
	{
		products.GET("", storefront_controller.GetProducts) // List with filters + sort

		products.GET("/filters", storefront_controller.GetFilterMetadata)
		products.GET("/:id", storefront_controller.GetProductByID)
	}

	categories := store.Group("/categories")
	{
		categories.GET("", storefront_controller.GetCategories)
		categories.GET("/:id", storefront_controller.GetCategoryByID)
	}

	store.POST("/recommendations", recommendation_controller.GetRecommendations)
}
