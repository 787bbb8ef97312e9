package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
	"gorm.io/gorm"
)

// AddReview records caller's rating of a product. A user has at most one
// review per product; submitting again replaces it. Ratings are recomputed
// from the stored reviews in the same transaction.
func (s *ProductService) AddReview(ctx context.Context, caller *types.Identity, rawID string, fields Fields) (*models.Product, error) {
	id, err := ParseID(rawID, "Invalid product id")
	if err != nil {
		return nil, err
	}
	rating, ok := utils.ParseNumber(fields["rating"])
	if !ok || !utils.IsValidRating(rating) {
		return nil, types.BadRequest("Rating must be between 1 and 5")
	}
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	comment := fields.Text("comment")

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ? AND is_active = ?", id, true).First(&models.Product{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errProductNotFound
			}
			return fmt.Errorf("find product: %w", err)
		}

		var review models.ProductReview
		err := tx.Where("product_id = ? AND user_id = ?", id, caller.UserID).First(&review).Error
		switch {
		case err == nil:
			if err := tx.Model(&review).Updates(map[string]interface{}{
				"rating":     rating,
				"comment":    comment,
				"created_at": time.Now(),
			}).Error; err != nil {
				return fmt.Errorf("update review: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.ProductReview{
				ProductID: id,
				UserID:    caller.UserID,
				Rating:    rating,
				Comment:   comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("create review: %w", err)
			}
		default:
			return fmt.Errorf("find review: %w", err)
		}

		var ratings []float64
		if err := tx.Model(&models.ProductReview{}).Where("product_id = ?", id).Pluck("rating", &ratings).Error; err != nil {
			return fmt.Errorf("load ratings: %w", err)
		}
		summary := computeRatings(ratings)
		return tx.Model(&models.Product{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
			"rating_average":       summary.Average,
			"rating_total_reviews": summary.TotalReviews,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// computeRatings averages ratings to two decimals. No ratings averages to 0.
func computeRatings(ratings []float64) models.Ratings {
	if len(ratings) == 0 {
		return models.Ratings{}
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return models.Ratings{
		Average:      math.Round(sum/float64(len(ratings))*100) / 100,
		TotalReviews: len(ratings),
	}
}
