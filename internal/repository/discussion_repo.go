package repository

import (
	"database/sql"
	"fmt"

	"careteam/internal/db"
	"careteam/internal/entities"
)

type DiscussionRepository struct {
	DB *sql.DB
}

func NewDiscussionRepository(database *sql.DB) *DiscussionRepository {
	return &DiscussionRepository{DB: database}
}

func (r *DiscussionRepository) ListByCase(caseID int64) ([]entities.DiscussionResponse, error) {
	query := `
		SELECT d.id, d.case_id, d.user_id, u.name, d.content, d.created_at
		FROM case_discussions d
		JOIN users u ON u.id = d.user_id
		WHERE d.case_id = $1
		ORDER BY d.created_at`

	rows, err := r.DB.Query(query, caseID)
	if err != nil {
		return nil, fmt.Errorf("error querying discussions: %w", err)
	}
	defer rows.Close()

	var discussions []entities.DiscussionResponse
	for rows.Next() {
		var d entities.DiscussionResponse
		if err := rows.Scan(&d.ID, &d.CaseID, &d.UserID, &d.UserName, &d.Content, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning discussion: %w", err)
		}
		discussions = append(discussions, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating discussion rows: %w", err)
	}

	for i := range discussions {
		attachments, err := r.getAttachments(discussions[i].ID)
		if err != nil {
			return nil, err
		}
		discussions[i].Attachments = attachments
	}
	return discussions, nil
}

func (r *DiscussionRepository) getAttachments(discussionID int64) ([]entities.AttachmentResponse, error) {
	rows, err := r.DB.Query(`
		SELECT id, filename, COALESCE(mime_type, ''), COALESCE(size, 0)
		FROM discussion_attachments
		WHERE discussion_id = $1
		ORDER BY id`, discussionID)
	if err != nil {
		return nil, fmt.Errorf("error querying attachments: %w", err)
	}
	defer rows.Close()

	var attachments []entities.AttachmentResponse
	for rows.Next() {
		var a entities.AttachmentResponse
		if err := rows.Scan(&a.ID, &a.Filename, &a.MimeType, &a.Size); err != nil {
			return nil, fmt.Errorf("error scanning attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating attachment rows: %w", err)
	}
	return attachments, nil
}

// CreateDiscussion inserts the message and its attachment metadata in one
// transaction. The files themselves are already on disk.
func (r *DiscussionRepository) CreateDiscussion(discussion *db.CaseDiscussion, attachments []db.DiscussionAttachment) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error beginning discussion transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO case_discussions (case_id, user_id, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`,
		discussion.CaseID, discussion.UserID, discussion.Content,
	).Scan(&discussion.ID, &discussion.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting discussion: %w", err)
	}

	for i := range attachments {
		attachments[i].DiscussionID = discussion.ID
		err = tx.QueryRow(`
			INSERT INTO discussion_attachments (discussion_id, filename, filepath, mime_type, size, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING id`,
			attachments[i].DiscussionID, attachments[i].Filename, attachments[i].Filepath,
			attachments[i].MimeType, attachments[i].Size,
		).Scan(&attachments[i].ID)
		if err != nil {
			return fmt.Errorf("error inserting attachment %s: %w", attachments[i].Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing discussion transaction: %w", err)
	}
	return nil
}
