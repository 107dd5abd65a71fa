package service

import (
	"fmt"
	"time"

	"careteam/internal/entities"
	"careteam/internal/logger"
	"careteam/internal/repository"
)

// Reminders go out for sessions starting within this window.
const reminderWindow = time.Hour

type JobService struct {
	Repo     *repository.JobRepository
	Sessions repository.SessionStore
	Notifier SessionNotifier
}

func NewJobService(repo *repository.JobRepository, sessions repository.SessionStore, notifier SessionNotifier) *JobService {
	return &JobService{Repo: repo, Sessions: sessions, Notifier: notifier}
}

// CompleteElapsedSessions marks scheduled sessions whose end time has
// passed as completed.
func (s *JobService) CompleteElapsedSessions() error {
	sessionIDs, err := s.Repo.GetScheduledSessionIDsPastEnd()
	if err != nil {
		return fmt.Errorf("cron job: failed to get sessions past end time: %w", err)
	}
	if len(sessionIDs) == 0 {
		return nil
	}

	logger.S().Infof("Cron job: marking %d sessions as completed, IDs %v", len(sessionIDs), sessionIDs)
	if err := s.Repo.UpdateSessionStatuses(sessionIDs, entities.SessionStatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update session statuses: %w", err)
	}
	return nil
}

// SendUpcomingReminders notifies participants of sessions starting soon.
// Each session is reminded once; delivery itself stays best-effort.
func (s *JobService) SendUpcomingReminders() error {
	sessions, err := s.Repo.GetSessionsNeedingReminder(reminderWindow)
	if err != nil {
		return fmt.Errorf("cron job: failed to get sessions needing reminder: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	var remindedIDs []int64
	for i := range sessions {
		participants, err := s.Sessions.GetSessionParticipants(sessions[i].ID)
		if err != nil {
			logger.S().Errorf("Cron job: participant lookup for session %d failed: %v", sessions[i].ID, err)
			continue
		}
		s.Notifier.NotifySessionReminder(&sessions[i], participants)
		remindedIDs = append(remindedIDs, sessions[i].ID)
	}

	if err := s.Repo.MarkRemindersSent(remindedIDs); err != nil {
		return fmt.Errorf("cron job: failed to mark reminders sent: %w", err)
	}
	logger.S().Infof("Cron job: sent reminders for %d sessions", len(remindedIDs))
	return nil
}
