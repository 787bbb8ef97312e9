package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var AllowedBadges = []string{"new", "sale", "featured", "limited", "popular"}

type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ColorVariant struct {
	Name  string   `json:"name"`
	Code  string   `json:"code,omitempty"`
	Stock *float64 `json:"stock,omitempty"`
}

type Ratings struct {
	Average      float64 `json:"average" gorm:"default:0"`
	TotalReviews int     `json:"totalReviews" gorm:"default:0"`
}

type Product struct {
	Base
	Name           string                             `json:"name" gorm:"not null"`
	Slug           string                             `json:"slug" gorm:"uniqueIndex;not null"`
	Description    string                             `json:"description,omitempty"`
	Price          float64                            `json:"price" gorm:"not null"`
	DiscountPrice  *float64                           `json:"discountPrice,omitempty"`
	CategoryID     *uuid.UUID                         `json:"categoryId,omitempty" gorm:"type:uuid;index"`
	Category       *Category                          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images         datatypes.JSONSlice[string]        `json:"images"`
	Brand          string                             `json:"brand,omitempty"`
	Specifications datatypes.JSONSlice[Specification] `json:"specifications"`
	ColorVariants  datatypes.JSONSlice[ColorVariant]  `json:"colorVariants"`
	Stock          float64                            `json:"stock" gorm:"default:0"`
	Ratings        Ratings                            `json:"ratings" gorm:"embedded;embeddedPrefix:rating_"`
	Reviews        []ProductReview                    `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
	LoveCount      int                                `json:"loveCount" gorm:"default:0"`
	Badges         datatypes.JSONSlice[string]        `json:"badges"`
	IsActive       bool                               `json:"isActive" gorm:"default:true;index"`
}

// ProductReview is unique per (product, user); a second submission replaces
// the first.
type ProductReview struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_product_review"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_product_review"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating    float64   `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductLike is one member of a product's likedBy set.
type ProductLike struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_product_like"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_product_like"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *ProductReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
