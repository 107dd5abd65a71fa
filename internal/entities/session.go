package entities

import "time"

const (
	SessionTypeVideo    = "video"
	SessionTypeInPerson = "in-person"
	SessionTypeHybrid   = "hybrid"

	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCanceled  = "canceled"
)

// Duration policy for scheduled sessions, in minutes.
const (
	MinSessionDuration = 15
	MaxSessionDuration = 240
)

type SessionRequest struct {
	ScheduledStart  time.Time `json:"scheduled_start"`
	DurationMinutes int       `json:"duration_minutes"`
	ParticipantIDs  []int64   `json:"participant_ids"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SessionType     string    `json:"session_type"`
}

type SessionParticipant struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"-"`
	Role   string `json:"role,omitempty"`
}

type SessionResponse struct {
	ID             int64                `json:"id"`
	CaseID         int64                `json:"case_id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	SessionType    string               `json:"session_type"`
	ScheduledStart time.Time            `json:"scheduled_start"`
	ScheduledEnd   time.Time            `json:"scheduled_end"`
	Status         string               `json:"status"`
	CreatedBy      int64                `json:"created_by"`
	Participants   []SessionParticipant `json:"participants"`
	CreatedAt      time.Time            `json:"created_at"`
}

// SessionEmailData feeds the scheduled-session notification templates.
type SessionEmailData struct {
	ParticipantName string
	SessionTitle    string
	CaseTitle       string
	SessionType     string
	StartFormatted  string
	EndFormatted    string
}
