package repository

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/lib/pq"

	"careteam/internal/db"
	"careteam/internal/entities"
	apperrors "careteam/internal/errors"
)

// SessionStore persists confirmed sessions. CreateSession must re-check
// participant bookings at commit time and refuse conflicting inserts.
type SessionStore interface {
	CreateSession(session *db.Session, participantIDs []int64) error
	GetSessionParticipants(sessionID int64) ([]entities.SessionParticipant, error)
	ListSessionsByCase(caseID int64) ([]db.Session, error)
}

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(database *sql.DB) *SessionRepository {
	return &SessionRepository{DB: database}
}

// CreateSession inserts the session and its participants in one
// transaction. A transaction-scoped advisory lock per participant is taken
// before the conflict check, so two concurrent schedulers of overlapping
// slots for a shared participant serialize even when neither session row
// exists yet; the loser re-runs the check against the winner's committed
// insert and gets a SchedulingConflict. Locks are acquired in sorted
// participant order so overlapping participant sets cannot deadlock.
func (r *SessionRepository) CreateSession(session *db.Session, participantIDs []int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error beginning session transaction: %w", err)
	}
	defer tx.Rollback()

	for _, userID := range lockOrder(participantIDs) {
		if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
			return fmt.Errorf("error acquiring scheduling lock for participant %d: %w", userID, err)
		}
	}

	conflictQuery := `
		SELECT sp.user_id
		FROM session_participants sp
		JOIN sessions s ON s.id = sp.session_id
		WHERE sp.user_id = ANY($1)
		  AND s.status = 'scheduled'
		  AND s.scheduled_start < $3
		  AND s.scheduled_end > $2`

	rows, err := tx.Query(conflictQuery, pq.Array(participantIDs), session.ScheduledStart, session.ScheduledEnd)
	if err != nil {
		return fmt.Errorf("error checking booking conflicts: %w", err)
	}

	seen := make(map[int64]bool)
	var conflicting []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning conflicting participant: %w", err)
		}
		if !seen[userID] {
			seen[userID] = true
			conflicting = append(conflicting, userID)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error after iterating conflict rows: %w", err)
	}
	rows.Close()

	if len(conflicting) > 0 {
		return &apperrors.SchedulingConflict{ParticipantIDs: conflicting}
	}

	err = tx.QueryRow(`
		INSERT INTO sessions (case_id, title, description, session_type,
			scheduled_start, scheduled_end, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at`,
		session.CaseID, session.Title, session.Description, session.SessionType,
		session.ScheduledStart, session.ScheduledEnd, session.Status, session.CreatedBy,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting session: %w", err)
	}

	for _, userID := range participantIDs {
		if _, err := tx.Exec(
			`INSERT INTO session_participants (session_id, user_id) VALUES ($1, $2)`,
			session.ID, userID); err != nil {
			return fmt.Errorf("error attaching participant %d: %w", userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing session transaction: %w", err)
	}
	return nil
}

// lockOrder returns the participant IDs in ascending order for advisory
// lock acquisition. Acquiring in a fixed global order keeps concurrent
// transactions with overlapping participant sets from deadlocking.
func lockOrder(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *SessionRepository) GetSessionParticipants(sessionID int64) ([]entities.SessionParticipant, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone, COALESCE(sp.role, '')
		FROM session_participants sp
		JOIN users u ON u.id = sp.user_id
		WHERE sp.session_id = $1
		ORDER BY u.id`

	rows, err := r.DB.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying session participants: %w", err)
	}
	defer rows.Close()

	var participants []entities.SessionParticipant
	for rows.Next() {
		var p entities.SessionParticipant
		if err := rows.Scan(&p.UserID, &p.Name, &p.Email, &p.Phone, &p.Role); err != nil {
			return nil, fmt.Errorf("error scanning session participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating participant rows: %w", err)
	}
	return participants, nil
}

func (r *SessionRepository) ListSessionsByCase(caseID int64) ([]db.Session, error) {
	query := `
		SELECT id, case_id, title, description, session_type,
		       scheduled_start, scheduled_end, status, created_by, created_at, updated_at
		FROM sessions
		WHERE case_id = $1
		ORDER BY scheduled_start`

	rows, err := r.DB.Query(query, caseID)
	if err != nil {
		return nil, fmt.Errorf("error querying case sessions: %w", err)
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
		return nil, fmt.Errorf("error after iterating session rows: %w", err)
	}
	return sessions, nil
}
