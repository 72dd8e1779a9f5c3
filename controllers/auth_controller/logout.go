package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
	"github.com/HaiderNafees/ElysianThreads/utils"
)

// Logout clears the session cookie and tears down the user's live
// subscriptions. Teardown completes before the response is written, so a
// login as a different user immediately after cannot see stale data.
func Logout(c *gin.Context) {
	if cookie, err := c.Cookie("auth_token"); err == nil {
		if claims, err := utils.ValidateJWT(cookie); err == nil {
			services.Sessions().Detach(claims.UID)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out successfully", nil))
}
