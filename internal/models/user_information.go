package models

import "time"

type UserInformation struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Name         string `gorm:"size:100" json:"name"`
	Age          int    `json:"age"`
	ProfileTitle string `gorm:"size:150" json:"profile_title"`
	LinkedIn     string `gorm:"size:255" json:"linkedin"`
	GitHub       string `gorm:"size:255" json:"github"`
	CVURL        string `gorm:"column:cv_url;size:255" json:"cv_url"`
	Industry     string `gorm:"size:100" json:"industry"`
	Country      string `gorm:"size:100" json:"country"`
	Experience   string `gorm:"type:text" json:"experience"`
	Description  string `gorm:"type:text" json:"description"`
	Avatar       string `gorm:"size:255" json:"avatar"`
	Gender       string `gorm:"size:20" json:"gender"`

	// Raw weekly schedule, e.g. [{"day":1,"times":["09:00-17:00"]}].
	// Parsed and defaulted by the schedule package, never here.
	AvailableTimeSlots string `gorm:"type:jsonb" json:"available_time_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
