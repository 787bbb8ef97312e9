package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/middleware"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch users")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"total": len(users),
		"users": users,
	})
}

func (h *UserHandler) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	user, err := h.userService.GetBySubject(c.Request.Context(), identity.SubjectID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch profile")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update profile")
		return
	}

	user, err := h.userService.UpdateProfile(
		c.Request.Context(),
		middleware.CurrentIdentity(c),
		c.Param("uid"),
		fields,
		middleware.UploadedFile(c),
	)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update profile")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update role")
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("uid"), fields.Text("role"))
	if err != nil {
		utils.SendAppError(c, err, "Failed to update role")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "User role updated successfully", gin.H{"user": user})
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.userService.Deactivate(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("uid")); err != nil {
		utils.SendAppError(c, err, "Failed to deactivate user")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "User deactivated successfully", nil)
}
