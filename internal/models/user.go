package models

type User struct {
	Base
	SubjectID    string  `json:"firebaseUid" gorm:"uniqueIndex;not null"`
	Name         string  `json:"name"`
	Email        string  `json:"email" gorm:"not null"`
	Gender       string  `json:"gender,omitempty"`
	Country      string  `json:"country,omitempty"`
	Photo        string  `json:"photo,omitempty"`
	Role         string  `json:"role" gorm:"default:user;not null"`
	Provider     string  `json:"provider,omitempty"`
	IsActive     bool    `json:"isActive" gorm:"default:true"`
	ProfileImage *string `json:"profileImage"`
	Bio          string  `json:"bio,omitempty" gorm:"size:200"`
	Phone        string  `json:"phone,omitempty"`
	Location     string  `json:"location,omitempty"`
}
