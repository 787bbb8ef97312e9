package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/middleware"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

const invalidTouristID = "Invalid tourist spot id"

type TouristHandler struct {
	touristService *services.TouristService
}

func NewTouristHandler(touristService *services.TouristService) *TouristHandler {
	return &TouristHandler{touristService: touristService}
}

func (h *TouristHandler) CreateSpot(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create tourist spot")
		return
	}
	spot, err := h.touristService.CreateSpot(c.Request.Context(), middleware.CurrentIdentity(c), fields, middleware.UploadedFile(c))
	if err != nil {
		utils.SendAppError(c, err, "Failed to create tourist spot")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Tourist spot created successfully", gin.H{"spot": spot})
}

func (h *TouristHandler) ListSpots(c *gin.Context) {
	spots, err := h.touristService.ListSpots(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch tourist spots")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"total": len(spots),
		"spots": spots,
	})
}

func (h *TouristHandler) GetSpot(c *gin.Context) {
	id, err := pathID(c, "touristId", invalidTouristID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch tourist spot")
		return
	}
	spot, err := h.touristService.GetSpot(c.Request.Context(), id)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch tourist spot")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"spot": spot})
}

func (h *TouristHandler) UpdateSpot(c *gin.Context) {
	id, err := pathID(c, "touristId", invalidTouristID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update tourist spot")
		return
	}
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update tourist spot")
		return
	}
	spot, err := h.touristService.UpdateSpot(c.Request.Context(), middleware.CurrentIdentity(c), id, fields, middleware.UploadedFile(c))
	if err != nil {
		utils.SendAppError(c, err, "Failed to update tourist spot")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Tourist spot updated successfully", gin.H{"spot": spot})
}

func (h *TouristHandler) DeleteSpot(c *gin.Context) {
	id, err := pathID(c, "touristId", invalidTouristID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to delete tourist spot")
		return
	}
	if err := h.touristService.DeleteSpot(c.Request.Context(), id); err != nil {
		utils.SendAppError(c, err, "Failed to delete tourist spot")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Tourist spot deleted successfully", nil)
}
