package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CommentList struct {
	Comments   []models.Comment
	Page       int
	TotalPages int
}

// CreateComment adds a top-level comment, or a reply when parentCommentId is
// given, and bumps the post's comment counter.
func (s *CommentService) CreateComment(ctx context.Context, caller *types.Identity, postID uuid.UUID, fields Fields) (*models.Comment, error) {
	content, err := fields.Required("content", "Comment content required")
	if err != nil {
		return nil, err
	}
	var parentID *uuid.UUID
	if raw := fields.Text("parentCommentId"); raw != "" {
		id, err := ParseID(raw, "Invalid parent comment id")
		if err != nil {
			return nil, err
		}
		parentID = &id
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:          postID,
		AuthorID:        caller.UserID,
		Content:         content,
		ParentCommentID: parentID,
		IsActive:        true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND is_active = ?", postID, true).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPostNotFound
			}
			return fmt.Errorf("find post: %w", err)
		}

		if parentID != nil {
			var parent models.Comment
			if err := tx.Where("id = ? AND post_id = ?", *parentID, postID).First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return types.NotFound("Parent comment not found")
				}
				return fmt.Errorf("find parent comment: %w", err)
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Preload("Author").First(comment, "id = ?", comment.ID).Error; err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	return comment, nil
}

// ListPostComments returns top-level comments, newest first.
func (s *CommentService) ListPostComments(ctx context.Context, postID uuid.UUID, page Page) (*CommentList, error) {
	query := s.db.WithContext(ctx).
		Where("post_id = ? AND parent_comment_id IS NULL AND is_active = ?", postID, true)

	var total int64
	if err := query.Session(&gorm.Session{}).Model(&models.Comment{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	comments := make([]models.Comment, 0)
	if err := query.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &CommentList{
		Comments:   comments,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, nil
}

// ListReplies returns the replies to a comment, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, commentID uuid.UUID) ([]models.Comment, error) {
	replies := make([]models.Comment, 0)
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("parent_comment_id = ? AND is_active = ?", commentID, true).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return replies, nil
}
