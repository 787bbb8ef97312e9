package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"gorm.io/gorm"
)

const (
	maxTouristTitle       = 200
	maxTouristDescription = 2000
)

var errTouristNotFound = types.NotFound("Tourist spot not found")

type TouristService struct {
	db     *gorm.DB
	images ImageStore
}

func NewTouristService(db *gorm.DB, images ImageStore) *TouristService {
	return &TouristService{db: db, images: images}
}

func validateTouristText(title, description string) error {
	if utf8.RuneCountInString(title) > maxTouristTitle {
		return types.BadRequest("Title cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(description) > maxTouristDescription {
		return types.BadRequest("Description cannot exceed 2000 characters")
	}
	return nil
}

func (s *TouristService) CreateSpot(ctx context.Context, caller *types.Identity, fields Fields, image *multipart.FileHeader) (*models.TouristSpot, error) {
	title, err := fields.Required("title", "Title is required")
	if err != nil {
		return nil, err
	}
	description, err := fields.Required("description", "Description is required")
	if err != nil {
		return nil, err
	}
	if err := validateTouristText(title, description); err != nil {
		return nil, err
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, types.BadRequest("Tourist image is required")
	}

	url, err := s.images.Upload(ctx, FolderTouristSpots, image)
	if err != nil {
		return nil, fmt.Errorf("upload tourist image: %w", err)
	}

	spot := &models.TouristSpot{
		AuthorID:    caller.UserID,
		Title:       title,
		Description: description,
		Image:       url,
	}
	if err := s.db.WithContext(ctx).Create(spot).Error; err != nil {
		return nil, fmt.Errorf("create tourist spot: %w", err)
	}
	return s.GetSpot(ctx, spot.ID)
}

func (s *TouristService) ListSpots(ctx context.Context) ([]models.TouristSpot, error) {
	spots := make([]models.TouristSpot, 0)
	if err := s.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Find(&spots).Error; err != nil {
		return nil, fmt.Errorf("list tourist spots: %w", err)
	}
	return spots, nil
}

func (s *TouristService) GetSpot(ctx context.Context, id uuid.UUID) (*models.TouristSpot, error) {
	var spot models.TouristSpot
	if err := s.db.WithContext(ctx).Preload("Author").First(&spot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errTouristNotFound
		}
		return nil, fmt.Errorf("find tourist spot: %w", err)
	}
	return &spot, nil
}

// UpdateSpot lets the author or an admin change the title, description or
// image of a spot.
func (s *TouristService) UpdateSpot(ctx context.Context, caller *types.Identity, id uuid.UUID, fields Fields, image *multipart.FileHeader) (*models.TouristSpot, error) {
	if !fields.HasAny("title", "description") && image == nil {
		return nil, errNothingToUpdate
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	spot, err := s.GetSpot(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsOwnerOrAdmin(spot.AuthorID) {
		return nil, types.Forbidden("You can only edit your own tourist spot")
	}

	updates := map[string]interface{}{}
	title, ok, err := fields.Optional("title", "Title cannot be empty")
	if err != nil {
		return nil, err
	}
	if ok {
		updates["title"] = title
	}
	description, ok, err := fields.Optional("description", "Description cannot be empty")
	if err != nil {
		return nil, err
	}
	if ok {
		updates["description"] = description
	}
	if err := validateTouristText(title, description); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.images.Upload(ctx, FolderTouristSpots, image)
		if err != nil {
			return nil, fmt.Errorf("upload tourist image: %w", err)
		}
		updates["image"] = url
	}

	if err := s.db.WithContext(ctx).Model(&models.TouristSpot{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update tourist spot: %w", err)
	}
	return s.GetSpot(ctx, id)
}

func (s *TouristService) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.TouristSpot{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete tourist spot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errTouristNotFound
	}
	return nil
}
