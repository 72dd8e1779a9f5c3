package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaiderNafees/ElysianThreads/config"
	"github.com/HaiderNafees/ElysianThreads/models"
	"github.com/HaiderNafees/ElysianThreads/services"
	"github.com/HaiderNafees/ElysianThreads/utils"
)

type sessionLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SessionLogin exchanges a Firebase ID token for a session cookie. The
// verified identity is merge-saved to the user's profile document and a
// live session is attached so the cart and wishlist start syncing.
func SessionLogin(c *gin.Context) {
	if config.AuthClient == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Authentication is not configured"))
		return
	}

	var req sessionLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request payload"))
		return
	}

	token, err := config.AuthClient.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired ID token"))
		return
	}

	identity := models.Identity{UID: token.UID}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.PhotoURL = picture
	}

	if err := services.Sessions().SaveProfile(c.Request.Context(), identity); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save profile"))
		return
	}
	services.Sessions().Ensure(identity)

	jwtToken, err := utils.GenerateJWT(identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create session"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", jwtToken, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged in successfully", gin.H{
		"user": identity,
	}))
}
