package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch dashboard")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"stats": stats})
}
