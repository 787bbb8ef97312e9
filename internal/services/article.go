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

var errArticleNotFound = types.NotFound("Article not found")

type ArticleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

func (s *ArticleService) CreateArticle(ctx context.Context, caller *types.Identity, fields Fields) (*models.Article, error) {
	category, err := fields.Required("category", "Article category is required")
	if err != nil {
		return nil, err
	}
	title, err := fields.Required("title", "Article title is required")
	if err != nil {
		return nil, err
	}
	description, err := fields.Required("description", "Article description is required")
	if err != nil {
		return nil, err
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	article := &models.Article{
		Category:    category,
		Title:       title,
		Description: description,
		AuthorID:    caller.UserID,
	}
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return s.GetArticle(ctx, article.ID)
}

// UpdateArticle lets a regular user edit their own article. Admins moderate
// by deleting instead.
func (s *ArticleService) UpdateArticle(ctx context.Context, caller *types.Identity, id uuid.UUID, fields Fields) (*models.Article, error) {
	if !fields.HasAny("category", "title", "description") {
		return nil, errNothingToUpdate
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if caller.Role != types.RoleUser {
		return nil, types.Forbidden("Only regular users can edit articles")
	}

	article, err := s.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsOwner(article.AuthorID) {
		return nil, types.Forbidden("You can only edit your own article")
	}

	updates := map[string]interface{}{}
	for _, field := range []struct{ key, label string }{
		{"category", "category"},
		{"title", "title"},
		{"description", "description"},
	} {
		value, ok, err := fields.Optional(field.key, "Article "+field.label+" cannot be empty")
		if err != nil {
			return nil, err
		}
		if ok {
			updates[field.key] = value
		}
	}

	if err := s.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return s.GetArticle(ctx, id)
}

func (s *ArticleService) ListArticles(ctx context.Context) ([]models.Article, error) {
	articles := make([]models.Article, 0)
	if err := s.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleService) GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).Preload("Author").First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return &article, nil
}

// DeleteArticle removes the article together with every save of it.
func (s *ArticleService) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Article{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete article: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errArticleNotFound
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.SavedArticle{}).Error; err != nil {
			return fmt.Errorf("delete saved articles: %w", err)
		}
		return nil
	})
}

// ToggleSave bookmarks the article for caller, or removes the bookmark if
// one exists. It reports whether the article is saved afterwards.
func (s *ArticleService) ToggleSave(ctx context.Context, caller *types.Identity, id uuid.UUID) (bool, error) {
	if err := requireCaller(caller); err != nil {
		return false, err
	}

	var saved bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errArticleNotFound
			}
			return fmt.Errorf("find article: %w", err)
		}

		var existing models.SavedArticle
		err := tx.Where("user_id = ? AND article_id = ?", caller.UserID, id).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("unsave article: %w", err)
			}
			saved = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.SavedArticle{UserID: caller.UserID, ArticleID: id}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return types.Conflict("Article already saved")
				}
				return fmt.Errorf("save article: %w", err)
			}
			saved = true
		default:
			return fmt.Errorf("find saved article: %w", err)
		}
		return nil
	})
	return saved, err
}

func (s *ArticleService) ListSaved(ctx context.Context, caller *types.Identity) ([]models.SavedArticle, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	saved := make([]models.SavedArticle, 0)
	if err := s.db.WithContext(ctx).
		Preload("Article").
		Preload("Article.Author").
		Where("user_id = ?", caller.UserID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return nil, fmt.Errorf("list saved articles: %w", err)
	}
	return saved, nil
}
