package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/middleware"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

const invalidPostID = "Invalid post id"

type PostHandler struct {
	postService    *services.PostService
	commentService *services.CommentService
}

func NewPostHandler(postService *services.PostService, commentService *services.CommentService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create post")
		return
	}
	post, err := h.postService.CreatePost(c.Request.Context(), middleware.CurrentIdentity(c), fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create post")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Post created successfully", gin.H{"post": post})
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	page := services.NewPage(c.Query("page"), c.Query("limit"))
	list, err := h.postService.ListPosts(c.Request.Context(), page)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch posts")
		return
	}
	sendPostList(c, list)
}

func (h *PostHandler) ListByCategory(c *gin.Context) {
	page := services.NewPage(c.Query("page"), c.Query("limit"))
	list, err := h.postService.ListByCategory(c.Request.Context(), c.Param("category"), page)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch posts")
		return
	}
	sendPostList(c, list)
}

func sendPostList(c *gin.Context, list *services.PostList) {
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"totalPosts":  list.Total,
		"currentPage": list.Page,
		"totalPages":  list.TotalPages,
		"posts":       list.Posts,
	})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := pathID(c, "postId", invalidPostID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch post")
		return
	}
	post, isLoved, err := h.postService.GetPost(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch post")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"post": post, "isLoved": isLoved})
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := pathID(c, "postId", invalidPostID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update post")
		return
	}
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update post")
		return
	}
	post, err := h.postService.UpdatePost(c.Request.Context(), middleware.CurrentIdentity(c), id, fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update post")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Post updated successfully", gin.H{"post": post})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := pathID(c, "postId", invalidPostID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to delete post")
		return
	}
	if err := h.postService.DeletePost(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		utils.SendAppError(c, err, "Failed to delete post")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Post deleted successfully", nil)
}

func (h *PostHandler) ToggleLove(c *gin.Context) {
	id, err := pathID(c, "postId", invalidPostID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to toggle love")
		return
	}
	loved, count, err := h.postService.ToggleLove(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		utils.SendAppError(c, err, "Failed to toggle love")
		return
	}
	message := "Post unloved"
	if loved {
		message = "Post loved"
	}
	utils.SendSuccess(c, http.StatusOK, message, gin.H{"loveCount": count, "isLoved": loved})
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	id, err := pathID(c, "postId", invalidPostID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to add comment")
		return
	}
	fields, err := readFields(c)
	if err != nil {
		utils.SendAppError(c, err, "Failed to add comment")
		return
	}
	comment, err := h.commentService.CreateComment(c.Request.Context(), middleware.CurrentIdentity(c), id, fields)
	if err != nil {
		utils.SendAppError(c, err, "Failed to add comment")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, "Comment added successfully", gin.H{"comment": comment})
}

func (h *PostHandler) ListComments(c *gin.Context) {
	id, err := pathID(c, "postId", invalidPostID)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch comments")
		return
	}
	page := services.NewPage(c.Query("page"), c.Query("limit"))
	list, err := h.commentService.ListPostComments(c.Request.Context(), id, page)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch comments")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"page":       list.Page,
		"totalPages": list.TotalPages,
		"comments":   list.Comments,
	})
}

func (h *PostHandler) ListReplies(c *gin.Context) {
	id, err := pathID(c, "commentId", "Invalid comment id")
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch replies")
		return
	}
	replies, err := h.commentService.ListReplies(c.Request.Context(), id)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch replies")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "", gin.H{"replies": replies})
}
