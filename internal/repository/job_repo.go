package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"careteam/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetScheduledSessionIDsPastEnd finds scheduled sessions whose end time has
// already passed.
func (r *JobRepository) GetScheduledSessionIDsPastEnd() ([]int64, error) {
	rows, err := r.DB.Query(
		`SELECT id FROM sessions WHERE status = 'scheduled' AND scheduled_end < NOW()`)
	if err != nil {
		return nil, fmt.Errorf("error querying sessions past end time: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning session ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateSessionStatuses sets the status for a batch of sessions and bumps
// updated_at.
func (r *JobRepository) UpdateSessionStatuses(ids []int64, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE sessions SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating session statuses: %w", err)
	}
	return nil
}

// GetSessionsNeedingReminder returns scheduled sessions starting within the
// given window whose reminder has not been sent yet.
func (r *JobRepository) GetSessionsNeedingReminder(window time.Duration) ([]db.Session, error) {
	rows, err := r.DB.Query(`
		SELECT id, case_id, title, description, session_type,
		       scheduled_start, scheduled_end, status, created_by, created_at, updated_at
		FROM sessions
		WHERE status = 'scheduled'
		  AND reminder_sent = FALSE
		  AND scheduled_start > NOW()
		  AND scheduled_start <= NOW() + $1::interval
		ORDER BY scheduled_start`,
		fmt.Sprintf("%d seconds", int(window.Seconds())))
	if err != nil {
		return nil, fmt.Errorf("error querying sessions needing reminder: %w", err)
	}
	defer rows.Close()

	var sessions []db.Session
	for rows.Next() {
		var s db.Session
		if err := rows.Scan(&s.ID, &s.CaseID, &s.Title, &s.Description, &s.SessionType,
			&s.ScheduledStart, &s.ScheduledEnd, &s.Status, &s.CreatedBy,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reminder rows: %w", err)
	}
	return sessions, nil
}

func (r *JobRepository) MarkRemindersSent(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE sessions SET reminder_sent = TRUE, updated_at = NOW() WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error marking reminders sent: %w", err)
	}
	return nil
}
