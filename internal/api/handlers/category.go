package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create category")
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create category")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Category created successfully", gin.H{"category": category})
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	categories, err := h.categoryService.ListCategories(c.Request.Context(), includeInactive)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch categories")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"total":      len(categories),
		"categories": categories,
	})
}
