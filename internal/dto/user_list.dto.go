package dto

import "time"

type UserListDTO struct {
	ID              uint       `json:"id"`
	Email           string     `json:"email"`
	PersonaType     string     `json:"persona_type"`
	AuthType        string     `json:"auth_type"`
	CreatedAt       time.Time  `json:"created_at"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	ConsentedAt     *time.Time `json:"consented_at"`

	Name         string `json:"name"`
	ProfileTitle string `json:"profile_title"`
	Country      string `json:"country"`
	Industry     string `json:"industry"`
	Age          int    `json:"age"`
	LinkedIn     string `json:"linkedin"`

	IdeasCount int `json:"ideas_count"`
}
