package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the store-assigned identifier and timestamps shared by every
// collection.
type Base struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&PostLove{},
		&Comment{},
		&Article{},
		&SavedArticle{},
		&Category{},
		&Product{},
		&ProductReview{},
		&ProductLike{},
		&TouristSpot{},
		&Terms{},
		&Contact{},
		&Faq{},
	}
}
