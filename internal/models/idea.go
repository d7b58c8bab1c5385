package models

import "time"

type Idea struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Name             string `gorm:"size:150;not null" json:"name"`
	Description      string `gorm:"type:text;not null" json:"description"`
	TargetedAudience string `gorm:"size:255;not null" json:"targeted_audience"`
	Stage            string `gorm:"size:50;not null" json:"stage"`

	PitchDeck    string `gorm:"size:255" json:"pitch_deck"`
	Document     string `gorm:"size:255" json:"document"`
	VoiceNote    string `gorm:"size:255" json:"voice_note"`
	IdeaCapture  string `gorm:"size:255" json:"idea_capture"`
	LensSelector string `gorm:"size:255" json:"lens_selector"`

	Status string `gorm:"size:20;not null;default:'in progress'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
