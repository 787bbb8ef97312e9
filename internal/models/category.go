package models

type Category struct {
	Base
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive" gorm:"not null"`
}
