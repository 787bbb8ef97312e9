package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
	"gorm.io/gorm"
)

var errCategoryNotFound = types.NotFound("Category not found")

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) CreateCategory(ctx context.Context, fields Fields) (*models.Category, error) {
	name, err := fields.Required("name", "Category name is required")
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if count > 0 {
		return nil, types.Conflict("Category already exists")
	}

	isActive := true
	if v, ok := fields["isActive"].(bool); ok {
		isActive = v
	}
	category := &models.Category{
		Name:        name,
		Slug:        utils.Slugify(name),
		Description: fields.Text("description"),
		IsActive:    isActive,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Conflict("Category slug must be unique")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// ListCategories returns categories ordered by name. Inactive ones are
// skipped unless includeInactive is set.
func (s *CategoryService) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	query := s.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	categories := make([]models.Category, 0)
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ResolveCategory finds an active category by id, then by slug, then by
// case-insensitive name.
func (s *CategoryService) ResolveCategory(ctx context.Context, input string) (*models.Category, error) {
	return resolveCategory(s.db.WithContext(ctx), input)
}

func resolveCategory(db *gorm.DB, input string) (*models.Category, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, errCategoryNotFound
	}

	var category models.Category
	if id, err := uuid.Parse(trimmed); err == nil {
		return findCategory(db, &category, "id = ? AND is_active = ?", id, true)
	}

	lower := strings.ToLower(trimmed)
	found, err := findCategory(db, &category, "slug = ? AND is_active = ?", lower, true)
	if err == nil || !errors.Is(err, errCategoryNotFound) {
		return found, err
	}
	return findCategory(db, &category, "LOWER(name) = ? AND is_active = ?", lower, true)
}

func findCategory(db *gorm.DB, dest *models.Category, query string, args ...interface{}) (*models.Category, error) {
	if err := db.Where(query, args...).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return dest, nil
}
