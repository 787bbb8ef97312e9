package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/middleware"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create product")
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), fields, middleware.UploadedFiles(c))
	if err != nil {
		utils.SendAppError(c, err, "Failed to create product")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Product created successfully", gin.H{"product": product})
}

func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	filter := services.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
		Badge:    c.Query("badge"),
		Page:     services.NewPage(c.Query("page"), c.Query("limit")),
	}
	list, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch products")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"total":      list.Total,
		"page":       list.Page,
		"totalPages": list.TotalPages,
		"products":   list.Products,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, isLoved, err := h.productService.GetProduct(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("productId"))
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch product")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"product": product, "isLoved": isLoved})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update product")
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("productId"), fields, middleware.UploadedFiles(c))
	if err != nil {
		utils.SendAppError(c, err, "Failed to update product")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Product updated successfully", gin.H{"product": product})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("productId")); err != nil {
		utils.SendAppError(c, err, "Failed to delete product")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) ToggleLove(c *gin.Context) {
	loved, count, err := h.productService.ToggleLove(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("productId"))
	if err != nil {
		utils.SendAppError(c, err, "Failed to toggle product love")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"loved": loved, "loveCount": count})
}
