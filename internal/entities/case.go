package entities

import "time"

type TeamMember struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
}

type CaseResponse struct {
	ID          int64        `json:"id"`
	PatientID   int64        `json:"patient_id"`
	PatientName string       `json:"patient_name"`
	Title       string       `json:"title"`
	Status      string       `json:"status,omitempty"`
	CreatedBy   int64        `json:"created_by"`
	Team        []TeamMember `json:"team,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
