package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"gorm.io/gorm"
)

const maxPostDescription = 2000

var errPostNotFound = types.NotFound("Post not found")

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

type PostList struct {
	Posts      []models.Post
	Total      int64
	Page       int
	TotalPages int
}

func validatePostDescription(description string) error {
	if utf8.RuneCountInString(description) > maxPostDescription {
		return types.BadRequest("Post description cannot exceed 2000 characters")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, caller *types.Identity, fields Fields) (*models.Post, error) {
	description, err := fields.Required("description", "Post description is required")
	if err != nil {
		return nil, err
	}
	if err := validatePostDescription(description); err != nil {
		return nil, err
	}
	category, err := fields.Required("category", "Post category is required")
	if err != nil {
		return nil, err
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:    caller.UserID,
		Description: description,
		Category:    category,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.findActive(ctx, post.ID)
}

func (s *PostService) ListPosts(ctx context.Context, page Page) (*PostList, error) {
	return s.list(ctx, page, s.db.WithContext(ctx).Where("is_active = ?", true))
}

func (s *PostService) ListByCategory(ctx context.Context, category string, page Page) (*PostList, error) {
	return s.list(ctx, page, s.db.WithContext(ctx).Where("is_active = ? AND category = ?", true, category))
}

func (s *PostService) list(ctx context.Context, page Page, query *gorm.DB) (*PostList, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	posts := make([]models.Post, 0)
	if err := query.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &PostList{
		Posts:      posts,
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
	}, nil
}

// GetPost returns an active post and whether caller has loved it.
func (s *PostService) GetPost(ctx context.Context, caller *types.Identity, id uuid.UUID) (*models.Post, bool, error) {
	post, err := s.findActive(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if caller == nil {
		return post, false, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PostLove{}).
		Where("post_id = ? AND user_id = ?", id, caller.UserID).
		Count(&count).Error; err != nil {
		return nil, false, fmt.Errorf("check post love: %w", err)
	}
	return post, count > 0, nil
}

func (s *PostService) UpdatePost(ctx context.Context, caller *types.Identity, id uuid.UUID, fields Fields) (*models.Post, error) {
	if !fields.HasAny("description", "category") {
		return nil, errNothingToUpdate
	}
	updates := map[string]interface{}{}
	description, ok, err := fields.Optional("description", "Post description cannot be empty")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := validatePostDescription(description); err != nil {
			return nil, err
		}
		updates["description"] = description
	}
	category, ok, err := fields.Optional("category", "Post category cannot be empty")
	if err != nil {
		return nil, err
	}
	if ok {
		updates["category"] = category
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	post, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsOwnerOrAdmin(post.AuthorID) {
		return nil, types.Forbidden("You are not allowed to edit this post")
	}

	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.findActive(ctx, id)
}

// DeletePost hides the post and removes its comments.
func (s *PostService) DeletePost(ctx context.Context, caller *types.Identity, id uuid.UUID) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	post, err := s.findActive(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsOwnerOrAdmin(post.AuthorID) {
		return types.Forbidden("You are not allowed to delete this post")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate post: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		return nil
	})
}

// ToggleLove adds caller to the post's lovedBy set or removes them from it.
// The returned count is the size of the set after the change.
func (s *PostService) ToggleLove(ctx context.Context, caller *types.Identity, id uuid.UUID) (bool, int, error) {
	if err := requireCaller(caller); err != nil {
		return false, 0, err
	}

	var loved bool
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND is_active = ?", id, true).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPostNotFound
			}
			return fmt.Errorf("find post: %w", err)
		}

		var love models.PostLove
		err := tx.Where("post_id = ? AND user_id = ?", id, caller.UserID).First(&love).Error
		switch {
		case err == nil:
			if err := tx.Delete(&love).Error; err != nil {
				return fmt.Errorf("remove love: %w", err)
			}
			loved = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.PostLove{PostID: id, UserID: caller.UserID}).Error; err != nil {
				return fmt.Errorf("add love: %w", err)
			}
			loved = true
		default:
			return fmt.Errorf("find love: %w", err)
		}

		if err := tx.Model(&models.PostLove{}).Where("post_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count loves: %w", err)
		}
		return tx.Model(&models.Post{}).Where("id = ?", id).Update("love_count", count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return loved, int(count), nil
}

func (s *PostService) findActive(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").
		Where("id = ? AND is_active = ?", id, true).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &post, nil
}
