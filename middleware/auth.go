package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/utils"
)

// AuthMiddleware validates the session JWT from cookie or Authorization
// header. An unauthenticated mutation attempt is answered with the login
// entry point, not logged as an error.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		// Try to get token from cookie first
		cookieToken, err := c.Cookie("auth_token")
		if err == nil && cookieToken != "" {
			token = cookieToken
		} else {
			// Fallback to Authorization header
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				unauthenticated(c)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthenticated(c)
				return
			}
			token = parts[1]
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			unauthenticated(c)
			return
		}

		identity := claims.Identity()
		c.Set("identity", identity)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	resp := models.ErrorResponse(c, "Please log in to continue")
	resp.Data = gin.H{"login": "/login"}
	c.JSON(http.StatusUnauthorized, resp)
	c.Abort()
}

// GetIdentityFromContext returns the identity set by AuthMiddleware.
func GetIdentityFromContext(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
