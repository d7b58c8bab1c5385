package models

import "time"

type FormResponse struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ResponderID uint `gorm:"not null" json:"responder_id"`
	Responder   User `gorm:"foreignKey:ResponderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"responder"`

	FormID uint `gorm:"not null" json:"form_id"`
	Form   Form `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"form"`

	ResponseURL string `gorm:"type:text" json:"response_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
