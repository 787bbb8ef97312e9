package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Base
	AuthorID      uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`
	Author        *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Description   string    `json:"description" gorm:"size:2000;not null"`
	Category      string    `json:"category" gorm:"not null;index"`
	LoveCount     int       `json:"loveCount" gorm:"default:0"`
	CommentsCount int       `json:"commentsCount" gorm:"default:0"`
	IsActive      bool      `json:"isActive" gorm:"default:true;index"`
}

// PostLove is one member of a post's lovedBy set.
type PostLove struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;uniqueIndex:idx_post_love"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_post_love"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	Base
	PostID          uuid.UUID  `json:"post" gorm:"type:uuid;not null;index"`
	AuthorID        uuid.UUID  `json:"authorId" gorm:"type:uuid;not null"`
	Author          *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content         string     `json:"content" gorm:"not null"`
	ParentCommentID *uuid.UUID `json:"parentComment" gorm:"type:uuid;index"`
	IsActive        bool       `json:"isActive" gorm:"default:true"`
}
