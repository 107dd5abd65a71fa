package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"careteam/internal/entities"
)

type CaseRepository struct {
	DB *sql.DB
}

func NewCaseRepository(database *sql.DB) *CaseRepository {
	return &CaseRepository{DB: database}
}

func (r *CaseRepository) ListCases() ([]entities.CaseResponse, error) {
	query := `
		SELECT c.id, c.patient_id, p.name, c.title, COALESCE(c.status, ''), c.created_by, c.created_at
		FROM cases c
		JOIN patients p ON p.id = c.patient_id
		ORDER BY c.created_at DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying cases: %w", err)
	}
	defer rows.Close()

	var cases []entities.CaseResponse
	for rows.Next() {
		var c entities.CaseResponse
		if err := rows.Scan(&c.ID, &c.PatientID, &c.PatientName, &c.Title,
			&c.Status, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning case: %w", err)
		}
		cases = append(cases, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating case rows: %w", err)
	}
	return cases, nil
}

func (r *CaseRepository) GetCase(id int64) (*entities.CaseResponse, error) {
	var c entities.CaseResponse
	err := r.DB.QueryRow(`
		SELECT c.id, c.patient_id, p.name, c.title, COALESCE(c.status, ''), c.created_by, c.created_at
		FROM cases c
		JOIN patients p ON p.id = c.patient_id
		WHERE c.id = $1`, id).
		Scan(&c.ID, &c.PatientID, &c.PatientName, &c.Title, &c.Status, &c.CreatedBy, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying case: %w", err)
	}

	team, err := r.GetTeamMembers(id)
	if err != nil {
		return nil, err
	}
	c.Team = team
	return &c, nil
}

func (r *CaseRepository) GetTeamMembers(caseID int64) ([]entities.TeamMember, error) {
	query := `
		SELECT u.id, u.name, u.email, COALESCE(ctm.role, '')
		FROM case_team_members ctm
		JOIN users u ON u.id = ctm.user_id
		WHERE ctm.case_id = $1
		ORDER BY u.id`

	rows, err := r.DB.Query(query, caseID)
	if err != nil {
		return nil, fmt.Errorf("error querying case team: %w", err)
	}
	defer rows.Close()

	var team []entities.TeamMember
	for rows.Next() {
		var m entities.TeamMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role); err != nil {
			return nil, fmt.Errorf("error scanning team member: %w", err)
		}
		team = append(team, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating team rows: %w", err)
	}
	return team, nil
}

func (r *CaseRepository) CaseExists(id int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking case existence: %w", err)
	}
	return exists, nil
}
