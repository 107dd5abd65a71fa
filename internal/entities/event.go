package entities

import (
	"encoding/json"
	"time"
)

type EventRequest struct {
	Title        string          `json:"title"`
	Time         time.Time       `json:"time"`
	Duration     int             `json:"duration"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Team         json.RawMessage `json:"team"`
	Patients     json.RawMessage `json:"patients"`
	RelatedItems json.RawMessage `json:"related_items"`
}

// EventResponse matches the shape the dashboard calendar consumes.
type EventResponse struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Time         time.Time       `json:"time"`
	Duration     int             `json:"duration"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Team         json.RawMessage `json:"team"`
	Patients     json.RawMessage `json:"patients"`
	RelatedItems json.RawMessage `json:"relatedItems"`
}
