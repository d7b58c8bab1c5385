package dto

import "time"

type BookingListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	CreatorEmail     string    `json:"creator_email"`
	ParticipantEmail string    `json:"participant_email"`
}
