package services

import (
	"context"
	"fmt"

	"github.com/sednex/community-backend/internal/models"
	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// DashboardStats counts the visible content of each resource family.
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalPosts    int64 `json:"totalPosts"`
	TotalComments int64 `json:"totalComments"`
	TotalArticles int64 `json:"totalArticles"`
	TotalProducts int64 `json:"totalProducts"`
	TotalReviews  int64 `json:"totalReviews"`
	TotalSpots    int64 `json:"totalTouristSpots"`
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	counts := []struct {
		name  string
		model interface{}
		where string
		dest  *int64
	}{
		{"users", &models.User{}, "is_active = ?", &stats.TotalUsers},
		{"posts", &models.Post{}, "is_active = ?", &stats.TotalPosts},
		{"comments", &models.Comment{}, "is_active = ?", &stats.TotalComments},
		{"articles", &models.Article{}, "", &stats.TotalArticles},
		{"products", &models.Product{}, "is_active = ?", &stats.TotalProducts},
		{"reviews", &models.ProductReview{}, "", &stats.TotalReviews},
		{"tourist spots", &models.TouristSpot{}, "", &stats.TotalSpots},
	}

	for _, c := range counts {
		query := s.db.WithContext(ctx).Model(c.model)
		if c.where != "" {
			query = query.Where(c.where, true)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	return &stats, nil
}
