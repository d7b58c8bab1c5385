package models

import "time"

type Form struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatorID uint `gorm:"not null" json:"creator_id"`
	Creator   User `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"creator"`

	IdeaID uint `gorm:"not null" json:"idea_id"`
	Idea   Idea `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"idea"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	FormURL   string     `gorm:"type:text" json:"form_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
