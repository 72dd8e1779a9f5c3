package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/controllers/auth_controller"
)

// SetupAuthRoutes sets up all authentication routes
func SetupAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/session", auth_controller.SessionLogin)
		auth.POST("/logout", auth_controller.Logout)
	}
}
