package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatorID uint `gorm:"not null" json:"creator_id"`
	Creator   User `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"creator"`

	ParticipantID uint `gorm:"not null" json:"participant_id"`
	Participant   User `gorm:"foreignKey:ParticipantID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"participant"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	VirtualConferenceID string `gorm:"type:text" json:"virtual_conference_id"`
	TranscriptURL       string `gorm:"type:text" json:"transcript_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
