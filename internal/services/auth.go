package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db       *gorm.DB
	verifier IdentityVerifier
}

func NewAuthService(db *gorm.DB, verifier IdentityVerifier) *AuthService {
	return &AuthService{
		db:       db,
		verifier: verifier,
	}
}

type LoginRequest struct {
	Token      string `json:"token"`
	Credential string `json:"credential"`
}

func (r LoginRequest) token() string {
	if t := utils.SanitizeString(r.Token); t != "" {
		return t
	}
	return utils.SanitizeString(r.Credential)
}

// LoginOrRegister verifies the provider credential and returns the local
// user, creating it on first sign-in.
func (s *AuthService) LoginOrRegister(ctx context.Context, req LoginRequest) (*models.User, error) {
	token := req.token()
	if token == "" {
		return nil, types.Unauthorized("Authentication failed")
	}

	verified, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return nil, types.Unauthorized("Authentication failed")
		}
		return nil, fmt.Errorf("verify credential: %w", err)
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("subject_id = ?", verified.Subject).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	name := utils.SanitizeString(verified.Name)
	if name == "" {
		name = "Guest User"
	}
	user = models.User{
		SubjectID: verified.Subject,
		Name:      name,
		Email:     verified.Email,
		Photo:     verified.Picture,
		Provider:  verified.Provider,
		Role:      types.RoleUser,
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent first login for the same subject won the insert.
			if err := s.db.WithContext(ctx).Where("subject_id = ?", verified.Subject).First(&user).Error; err == nil {
				return &user, nil
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate resolves a bearer token to the caller's local identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*types.Identity, error) {
	verified, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return nil, types.Unauthorized("Invalid token")
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("subject_id = ?", verified.Subject).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Forbidden("User not registered")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, types.Forbidden("Account is disabled")
	}

	return &types.Identity{
		UserID:    user.ID,
		SubjectID: user.SubjectID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
	}, nil
}
