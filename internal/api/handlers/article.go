package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/middleware"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

const invalidArticleID = "Invalid article id"

type ArticleHandler struct {
	articleService *services.ArticleService
}

func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create article")
		return
	}
	article, err := h.articleService.CreateArticle(c.Request.Context(), middleware.CurrentIdentity(c), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create article")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Article created successfully", gin.H{"article": article})
}

func (h *ArticleHandler) ListArticles(c *gin.Context) {
	articles, err := h.articleService.ListArticles(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch articles")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"total":    len(articles),
		"articles": articles,
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := pathID(c, "articleId", invalidArticleID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch article")
		return
	}
	article, err := h.articleService.GetArticle(c.Request.Context(), id)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch article")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"article": article})
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, err := pathID(c, "articleId", invalidArticleID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update article")
		return
	}
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update article")
		return
	}
	article, err := h.articleService.UpdateArticle(c.Request.Context(), middleware.CurrentIdentity(c), id, fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update article")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Article updated successfully", gin.H{"article": article})
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := pathID(c, "articleId", invalidArticleID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to delete article")
		return
	}
	if err := h.articleService.DeleteArticle(c.Request.Context(), id); err != nil {
		utils.SendAppError(c, err, "Failed to delete article")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Article deleted successfully", nil)
}

// ToggleSave answers 201 when the article becomes saved and 200 when the
// bookmark is removed.
func (h *ArticleHandler) ToggleSave(c *gin.Context) {
	id, err := pathID(c, "articleId", invalidArticleID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to save article")
		return
	}
	saved, err := h.articleService.ToggleSave(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		utils.SendAppError(c, err, "Failed to save article")
		return
	}
	if saved {
		utils.SendSuccess(c, http.StatusCreated, "Article saved successfully", gin.H{"saved": true})
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Article unsaved successfully", gin.H{"saved": false})
}

func (h *ArticleHandler) ListSaved(c *gin.Context) {
	saved, err := h.articleService.ListSaved(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch saved articles")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"total":         len(saved),
		"savedArticles": saved,
	})
}
