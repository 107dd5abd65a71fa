package entities

import "time"

// Discussion messages are capped at this many characters.
const MaxDiscussionLength = 1000

type AttachmentResponse struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

type DiscussionResponse struct {
	ID          int64                `json:"id"`
	CaseID      int64                `json:"case_id"`
	UserID      int64                `json:"user_id"`
	UserName    string               `json:"user_name"`
	Content     string               `json:"content"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}
