package models

// Terms and Contact are singletons. The unique Singleton column lets the
// store reject a second row even when two creates race.
type Terms struct {
	Base
	Singleton bool   `json:"-" gorm:"uniqueIndex;not null;default:true"`
	Title     string `json:"title" gorm:"not null"`
	Content   string `json:"content" gorm:"type:text;not null"`
	Version   string `json:"version" gorm:"not null"`
}

type Contact struct {
	Base
	Singleton bool   `json:"-" gorm:"uniqueIndex;not null;default:true"`
	Email     string `json:"email" gorm:"not null"`
	Mobile    string `json:"mobile" gorm:"not null"`
	Website   string `json:"website" gorm:"not null"`
}

type Faq struct {
	Base
	Question string `json:"question" gorm:"uniqueIndex;not null"`
	Answer   string `json:"answer" gorm:"type:text;not null"`
}
