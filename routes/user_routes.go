package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/controllers/cart_controller"
	"github.com/HaiderNafees/ElysianThreads/controllers/profile_controller"
	"github.com/HaiderNafees/ElysianThreads/controllers/wishlist_controller"
	"github.com/HaiderNafees/ElysianThreads/middleware"
)

// SetupUserRoutes sets up all authenticated user routes
func SetupUserRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware()) // All routes require auth
	user.Use(middleware.RateLimiter(120, time.Minute))
	{
		user.GET("/me", profile_controller.GetMe)
		user.PATCH("/me", profile_controller.UpdateProfile)

		// Cart
		user.GET("/cart", cart_controller.GetCart)
		user.POST("/cart", cart_controller.AddToCart)
		user.PATCH("/cart/:productId", cart_controller.UpdateQuantity)
		user.DELETE("/cart/:productId", cart_controller.RemoveItem)
		user.GET("/cart/stream", cart_controller.StreamCart)

		// Wishlist
		user.GET("/wishlist", wishlist_controller.GetWishlist)
		user.POST("/wishlist/:productId/toggle", wishlist_controller.ToggleWishlist)
		user.GET("/wishlist/stream", wishlist_controller.StreamWishlist)
	}
}
