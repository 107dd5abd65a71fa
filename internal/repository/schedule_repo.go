package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"careteam/internal/schedule"
)

// ScheduleStore returns, per participant and date range, the declared
// availability blocks and the bookings that already occupy them.
type ScheduleStore interface {
	GetTeamMemberIDs(caseID int64) ([]int64, error)
	GetAvailabilityBlocks(userIDs []int64, start, end time.Time) (map[int64][]schedule.AvailabilityBlock, error)
	GetBookings(userIDs []int64, start, end time.Time) (map[int64][]schedule.Booking, error)
}

type ScheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func (r *ScheduleRepository) GetTeamMemberIDs(caseID int64) ([]int64, error) {
	rows, err := r.DB.Query(
		`SELECT user_id FROM case_team_members WHERE case_id = $1 ORDER BY user_id`, caseID)
	if err != nil {
		return nil, fmt.Errorf("error querying case team members: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning team member ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating team member rows: %w", err)
	}
	return ids, nil
}

func (r *ScheduleRepository) GetAvailabilityBlocks(userIDs []int64, start, end time.Time) (map[int64][]schedule.AvailabilityBlock, error) {
	query := `
		SELECT user_id, kind, start_time, end_time
		FROM availability_blocks
		WHERE user_id = ANY($1)
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY user_id, start_time`

	rows, err := r.DB.Query(query, pq.Array(userIDs), start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying availability blocks: %w", err)
	}
	defer rows.Close()

	blocks := make(map[int64][]schedule.AvailabilityBlock)
	for rows.Next() {
		var userID int64
		var b schedule.AvailabilityBlock
		if err := rows.Scan(&userID, &b.Kind, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("error scanning availability block: %w", err)
		}
		blocks[userID] = append(blocks[userID], b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating availability rows: %w", err)
	}
	return blocks, nil
}

func (r *ScheduleRepository) GetBookings(userIDs []int64, start, end time.Time) (map[int64][]schedule.Booking, error) {
	query := `
		SELECT sp.user_id, s.scheduled_start, s.scheduled_end
		FROM session_participants sp
		JOIN sessions s ON s.id = sp.session_id
		WHERE sp.user_id = ANY($1)
		  AND s.status = 'scheduled'
		  AND s.scheduled_start < $3
		  AND s.scheduled_end > $2
		ORDER BY sp.user_id, s.scheduled_start`

	rows, err := r.DB.Query(query, pq.Array(userIDs), start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := make(map[int64][]schedule.Booking)
	for rows.Next() {
		var userID int64
		var b schedule.Booking
		if err := rows.Scan(&userID, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings[userID] = append(bookings[userID], b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}
