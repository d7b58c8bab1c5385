package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password;type:text" json:"-"`
	TempID       string `gorm:"size:100" json:"temp_id"`

	AuthType    string `gorm:"size:20;not null;default:'email'" json:"auth_type"`
	PersonaType string `gorm:"size:20;not null;default:'not_selected'" json:"persona_type"`

	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	ConsentedAt     *time.Time `json:"consented_at"`
	DeletedAt       *time.Time `gorm:"index" json:"deleted_at"`

	Information *UserInformation `gorm:"foreignKey:UserID" json:"information,omitempty"`
	Ideas       []Idea           `gorm:"foreignKey:UserID" json:"ideas,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
