package service

import (
	"fmt"
	"time"

	"careteam/internal/db"
	"careteam/internal/entities"
	"careteam/internal/logger"
)

// SessionNotifier performs best-effort delivery of session notifications.
// Failures are logged by implementations and never fail the scheduling call.
type SessionNotifier interface {
	NotifySessionScheduled(session *db.Session, participants []entities.SessionParticipant)
	NotifySessionReminder(session *db.Session, participants []entities.SessionParticipant)
}

type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) NotifySessionScheduled(session *db.Session, participants []entities.SessionParticipant) {
	subject := fmt.Sprintf("Team session scheduled: %s", session.Title)
	for _, p := range participants {
		body := fmt.Sprintf(
			"Hello %s,\n\nA %s team session has been scheduled.\n\n"+
				"Title: %s\n"+
				"Start: %s\n"+
				"End: %s\n\n"+
				"%s\n\n"+
				"CareTeam",
			p.Name, session.SessionType, session.Title,
			formatSessionTime(session.ScheduledStart),
			formatSessionTime(session.ScheduledEnd),
			session.Description,
		)
		s.dispatch(p, subject, body)
	}
}

func (s *SenderService) NotifySessionReminder(session *db.Session, participants []entities.SessionParticipant) {
	subject := fmt.Sprintf("Reminder: %s starts at %s", session.Title, formatSessionTime(session.ScheduledStart))
	for _, p := range participants {
		body := fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder for the upcoming %s session %q, starting at %s.\n\nCareTeam",
			p.Name, session.SessionType, session.Title, formatSessionTime(session.ScheduledStart),
		)
		s.dispatch(p, subject, body)
	}
}

// dispatch sends asynchronously; delivery errors are logged and swallowed.
func (s *SenderService) dispatch(p entities.SessionParticipant, subject, body string) {
	go func(toEmail, toName, subject, body string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body, ""); err != nil {
			logger.S().Errorf("Notification email to %s failed: %v", toEmail, err)
		}
	}(p.Email, p.Name, subject, body)

	if p.Phone != "" {
		go func(toNumber, body string) {
			if err := SendSMS(toNumber, body); err != nil {
				logger.S().Errorf("Notification SMS to %s failed: %v", toNumber, err)
			}
		}(p.Phone, subject)
	}
}

func formatSessionTime(t time.Time) string {
	return t.UTC().Format("02 Jan 2006 15:04 MST")
}
