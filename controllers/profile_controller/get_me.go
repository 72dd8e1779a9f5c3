package profile_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/middleware"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
)

// GetMe returns the users/{uid} profile document. When the document does
// not exist yet the token's identity is returned as-is, so the endpoint
// works before the first profile write lands.
func GetMe(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Please log in to continue"))
		return
	}

	doc, err := services.Sessions().FetchProfile(c.Request.Context(), identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch profile"))
		return
	}

	if doc == nil {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile fetched successfully", gin.H{
			"uid":         identity.UID,
			"email":       identity.Email,
			"displayName": identity.DisplayName,
			"photoURL":    identity.PhotoURL,
		}))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile fetched successfully", doc.Data))
}
