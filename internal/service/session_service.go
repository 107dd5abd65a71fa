package service

import (
	"time"

	"careteam/internal/db"
	"careteam/internal/entities"
	apperrors "careteam/internal/errors"
	"careteam/internal/logger"
	"careteam/internal/repository"
)

// SessionScheduler validates and persists team sessions, then notifies
// participants best-effort.
type SessionScheduler interface {
	ScheduleSession(caseID, createdBy int64, req *entities.SessionRequest) (*entities.SessionResponse, error)
	ListSessions(caseID int64) ([]entities.SessionResponse, error)
}

type SessionService struct {
	Sessions repository.SessionStore
	Users    repository.UserRepository
	Notifier SessionNotifier
}

func NewSessionService(sessions repository.SessionStore, users repository.UserRepository, notifier SessionNotifier) *SessionService {
	return &SessionService{Sessions: sessions, Users: users, Notifier: notifier}
}

func validSessionType(t string) bool {
	switch t {
	case entities.SessionTypeVideo, entities.SessionTypeInPerson, entities.SessionTypeHybrid:
		return true
	}
	return false
}

func (s *SessionService) validate(req *entities.SessionRequest) error {
	verr := apperrors.NewValidationError()
	if req.Title == "" {
		verr.Add("title", "title is required")
	} else if len(req.Title) > 255 {
		verr.Add("title", "title must be at most 255 characters")
	}
	if req.ScheduledStart.IsZero() {
		verr.Add("scheduled_start", "scheduled_start is required")
	}
	if req.DurationMinutes < entities.MinSessionDuration || req.DurationMinutes > entities.MaxSessionDuration {
		verr.Add("duration_minutes", "duration must be between 15 and 240 minutes")
	}
	if !validSessionType(req.SessionType) {
		verr.Add("session_type", "session_type must be one of video, in-person, hybrid")
	}
	if len(req.ParticipantIDs) == 0 {
		verr.Add("participant_ids", "at least one participant is required")
	}
	if verr.HasErrors() {
		return verr
	}

	count, err := s.Users.CountExisting(req.ParticipantIDs)
	if err != nil {
		return &apperrors.CollaboratorUnavailable{Collaborator: "user store", Err: err}
	}
	if count != len(uniqueIDs(req.ParticipantIDs)) {
		return apperrors.NewValidationError().Add("participant_ids", "one or more participants do not exist")
	}
	return nil
}

// ScheduleSession persists the session, then notifies participants. The
// commit-time conflict check lives in the store's transaction; a conflict
// surfaces here as SchedulingConflict, distinct from validation failures.
// Notification failures never roll back the persisted session.
func (s *SessionService) ScheduleSession(caseID, createdBy int64, req *entities.SessionRequest) (*entities.SessionResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	session := &db.Session{
		CaseID:         caseID,
		Title:          req.Title,
		Description:    req.Description,
		SessionType:    req.SessionType,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledStart.Add(time.Duration(req.DurationMinutes) * time.Minute),
		Status:         entities.SessionStatusScheduled,
		CreatedBy:      createdBy,
	}

	if err := s.Sessions.CreateSession(session, uniqueIDs(req.ParticipantIDs)); err != nil {
		return nil, err
	}

	participants, err := s.Sessions.GetSessionParticipants(session.ID)
	if err != nil {
		logger.S().Errorf("Session %d persisted but participant lookup failed: %v", session.ID, err)
		participants = nil
	}

	if s.Notifier != nil {
		s.Notifier.NotifySessionScheduled(session, participants)
	}

	logger.S().Infof("Scheduled session %d for case %d with %d participants",
		session.ID, caseID, len(participants))
	return sessionResponse(session, participants), nil
}

func (s *SessionService) ListSessions(caseID int64) ([]entities.SessionResponse, error) {
	sessions, err := s.Sessions.ListSessionsByCase(caseID)
	if err != nil {
		return nil, &apperrors.CollaboratorUnavailable{Collaborator: "session store", Err: err}
	}

	responses := make([]entities.SessionResponse, 0, len(sessions))
	for i := range sessions {
		participants, err := s.Sessions.GetSessionParticipants(sessions[i].ID)
		if err != nil {
			return nil, &apperrors.CollaboratorUnavailable{Collaborator: "session store", Err: err}
		}
		responses = append(responses, *sessionResponse(&sessions[i], participants))
	}
	return responses, nil
}

func sessionResponse(session *db.Session, participants []entities.SessionParticipant) *entities.SessionResponse {
	return &entities.SessionResponse{
		ID:             session.ID,
		CaseID:         session.CaseID,
		Title:          session.Title,
		Description:    session.Description,
		SessionType:    session.SessionType,
		ScheduledStart: session.ScheduledStart,
		ScheduledEnd:   session.ScheduledEnd,
		Status:         session.Status,
		CreatedBy:      session.CreatedBy,
		Participants:   participants,
		CreatedAt:      session.CreatedAt,
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	var out []int64
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
