package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"careteam/internal/db"
	"careteam/internal/entities"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(database *sql.DB) *EventRepository {
	return &EventRepository{DB: database}
}

const eventColumns = `id, title, time, duration, location, category,
	COALESCE(description, ''), COALESCE(team, '[]'), COALESCE(patients, '[]'),
	COALESCE(related_items, '[]'), created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*db.Event, error) {
	var e db.Event
	err := row.Scan(&e.ID, &e.Title, &e.Time, &e.Duration, &e.Location, &e.Category,
		&e.Description, &e.Team, &e.Patients, &e.RelatedItems, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListEvents() ([]db.Event, error) {
	rows, err := r.DB.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY time`)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []db.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, *e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating event rows: %w", err)
	}
	return events, nil
}

func (r *EventRepository) GetEvent(id int64) (*db.Event, error) {
	e, err := scanEvent(r.DB.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) CreateEvent(req *entities.EventRequest) (*db.Event, error) {
	e, err := scanEvent(r.DB.QueryRow(`
		INSERT INTO events (title, time, duration, location, category, description,
			team, patients, related_items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING `+eventColumns,
		req.Title, req.Time, req.Duration, req.Location, req.Category, req.Description,
		nullableJSON(req.Team), nullableJSON(req.Patients), nullableJSON(req.RelatedItems)))
	if err != nil {
		return nil, fmt.Errorf("error inserting event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) UpdateEvent(id int64, req *entities.EventRequest) (*db.Event, error) {
	e, err := scanEvent(r.DB.QueryRow(`
		UPDATE events
		SET title = $2, time = $3, duration = $4, location = $5, category = $6,
		    description = $7, team = $8, patients = $9, related_items = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING `+eventColumns,
		id, req.Title, req.Time, req.Duration, req.Location, req.Category, req.Description,
		nullableJSON(req.Team), nullableJSON(req.Patients), nullableJSON(req.RelatedItems)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) DeleteEvent(id int64) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
