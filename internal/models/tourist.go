package models

import "github.com/google/uuid"

type TouristSpot struct {
	Base
	AuthorID    uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`
	Author      *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:2000;not null"`
	Image       string    `json:"image" gorm:"not null"`
}
