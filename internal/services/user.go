package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"unicode/utf8"

	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
	"gorm.io/gorm"
)

const maxBioLength = 200

var allowedGenders = map[string]bool{"male": true, "female": true, "other": true}

type UserService struct {
	db     *gorm.DB
	images ImageStore
}

func NewUserService(db *gorm.DB, images ImageStore) *UserService {
	return &UserService{db: db, images: images}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// UpdateProfile changes the self-service profile fields of subjectID. Only
// the user themself or an admin may do so.
func (s *UserService) UpdateProfile(ctx context.Context, caller *types.Identity, subjectID string, fields Fields, image *multipart.FileHeader) (*models.User, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if caller.SubjectID != subjectID && !caller.IsAdmin() {
		return nil, types.Forbidden("You can only update your own profile")
	}

	updates := map[string]interface{}{}
	for _, key := range []string{"name", "phone", "location", "country"} {
		if value := fields.Text(key); value != "" {
			updates[key] = value
		}
	}
	if bio := fields.Text("bio"); bio != "" {
		if utf8.RuneCountInString(bio) > maxBioLength {
			return nil, types.BadRequest("Bio cannot exceed 200 characters")
		}
		updates["bio"] = bio
	}
	if gender := fields.Text("gender"); gender != "" {
		if !allowedGenders[gender] {
			return nil, types.BadRequest("Invalid gender")
		}
		updates["gender"] = gender
	}
	if len(updates) == 0 && image == nil {
		return nil, errNothingToUpdate
	}

	user, err := s.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.images.Upload(ctx, FolderUserProfiles, image)
		if err != nil {
			return nil, fmt.Errorf("upload profile image: %w", err)
		}
		updates["profile_image"] = url
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetBySubject(ctx, subjectID)
}

func (s *UserService) UpdateRole(ctx context.Context, caller *types.Identity, subjectID, role string) (*models.User, error) {
	role = utils.SanitizeString(role)
	if !utils.IsValidRole(role) {
		return nil, types.BadRequest("Invalid role")
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if caller.SubjectID == subjectID {
		return nil, types.BadRequest("You cannot change your own role")
	}
	return s.SetRole(ctx, subjectID, role)
}

// SetRole assigns role without caller checks. Used by the grant-role command.
func (s *UserService) SetRole(ctx context.Context, subjectID, role string) (*models.User, error) {
	if !utils.IsValidRole(role) {
		return nil, types.BadRequest("Invalid role")
	}
	user, err := s.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role
	return user, nil
}

// Deactivate disables an account. Deactivated users can no longer
// authenticate but their content stays.
func (s *UserService) Deactivate(ctx context.Context, caller *types.Identity, subjectID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if caller.SubjectID == subjectID {
		return types.BadRequest("You cannot deactivate your own account")
	}
	user, err := s.GetBySubject(ctx, subjectID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}
