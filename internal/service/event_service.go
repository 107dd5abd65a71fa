package service

import (
	"careteam/internal/db"
	"careteam/internal/entities"
	apperrors "careteam/internal/errors"
	"careteam/internal/repository"
)

type EventService struct {
	Repo *repository.EventRepository
}

func NewEventService(repo *repository.EventRepository) *EventService {
	return &EventService{Repo: repo}
}

func validateEvent(req *entities.EventRequest) error {
	verr := apperrors.NewValidationError()
	if req.Title == "" {
		verr.Add("title", "title is required")
	} else if len(req.Title) > 255 {
		verr.Add("title", "title must be at most 255 characters")
	}
	if req.Time.IsZero() {
		verr.Add("time", "time is required")
	}
	if req.Duration <= 0 {
		verr.Add("duration", "duration must be positive")
	}
	if req.Location == "" {
		verr.Add("location", "location is required")
	}
	if req.Category == "" {
		verr.Add("category", "category is required")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *EventService) ListEvents() ([]entities.EventResponse, error) {
	events, err := s.Repo.ListEvents()
	if err != nil {
		return nil, err
	}
	responses := make([]entities.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, eventResponse(&events[i]))
	}
	return responses, nil
}

func (s *EventService) GetEvent(id int64) (*entities.EventResponse, error) {
	event, err := s.Repo.GetEvent(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrNotFound("event not found")
	}
	resp := eventResponse(event)
	return &resp, nil
}

func (s *EventService) CreateEvent(req *entities.EventRequest) (*entities.EventResponse, error) {
	if err := validateEvent(req); err != nil {
		return nil, err
	}
	event, err := s.Repo.CreateEvent(req)
	if err != nil {
		return nil, err
	}
	resp := eventResponse(event)
	return &resp, nil
}

func (s *EventService) UpdateEvent(id int64, req *entities.EventRequest) (*entities.EventResponse, error) {
	if err := validateEvent(req); err != nil {
		return nil, err
	}
	event, err := s.Repo.UpdateEvent(id, req)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrNotFound("event not found")
	}
	resp := eventResponse(event)
	return &resp, nil
}

func (s *EventService) DeleteEvent(id int64) error {
	deleted, err := s.Repo.DeleteEvent(id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrNotFound("event not found")
	}
	return nil
}

func eventResponse(e *db.Event) entities.EventResponse {
	return entities.EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Time:         e.Time,
		Duration:     e.Duration,
		Location:     e.Location,
		Category:     e.Category,
		Description:  e.Description,
		Team:         e.Team,
		Patients:     e.Patients,
		RelatedItems: e.RelatedItems,
	}
}
