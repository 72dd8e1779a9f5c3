package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
)

// SessionFromContext resolves the live user session for the authenticated
// request, attaching a fresh one when the registry lost it (e.g. the token
// outlived a restart). Requires AuthMiddleware upstream.
func SessionFromContext(c *gin.Context) (*services.UserSession, models.Identity, bool) {
	identity, ok := GetIdentityFromContext(c)
	if !ok {
		return nil, models.Identity{}, false
	}
	return services.Sessions().Ensure(identity), identity, true
}
