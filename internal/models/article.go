package models

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	Base
	Category    string    `json:"category" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	AuthorID    uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`
	Author      *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// SavedArticle records that a user bookmarked an article. At most one row
// exists per (user, article).
type SavedArticle struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user" gorm:"type:uuid;not null;uniqueIndex:idx_saved_article"`
	ArticleID uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_saved_article;index"`
	Article   *Article  `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	CreatedAt time.Time `json:"createdAt"`
}
