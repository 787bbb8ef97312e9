package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/middleware"
	"github.com/sednex/community-backend/internal/utils"
)

// AddReview creates or replaces the caller's review of a product and returns
// the product with its recomputed ratings.
func (h *ProductHandler) AddReview(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to submit review")
		return
	}
	product, err := h.productService.AddReview(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("productId"), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to submit review")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Review submitted successfully", gin.H{"product": product})
}
