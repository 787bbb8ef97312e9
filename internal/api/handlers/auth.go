package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges an identity provider token for the local user, creating
// the user on first sign-in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendAppError(c, types.Unauthorized("Authentication failed"), "Authentication failed")
		return
	}

	user, err := h.authService.LoginOrRegister(c.Request.Context(), req)
	if err != nil {
		utils.SendAppError(c, err, "Authentication failed")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Authentication successful", gin.H{"user": user})
}
