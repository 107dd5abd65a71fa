package db

import (
	"encoding/json"
	"time"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Session struct {
	ID             int64
	CaseID         int64
	Title          string
	Description    string
	SessionType    string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Status         string
	ReminderSent   bool
	CreatedBy      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Event struct {
	ID           int64
	Title        string
	Time         time.Time
	Duration     int
	Location     string
	Category     string
	Description  string
	Team         json.RawMessage
	Patients     json.RawMessage
	RelatedItems json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CaseDiscussion struct {
	ID        int64
	CaseID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

type DiscussionAttachment struct {
	ID           int64
	DiscussionID int64
	Filename     string
	Filepath     string
	MimeType     string
	Size         int64
	CreatedAt    time.Time
}
