package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"careteam/internal/db"
	"careteam/internal/entities"
	apperrors "careteam/internal/errors"
	"careteam/internal/logger"
	"careteam/internal/repository"
)

type DiscussionService struct {
	Repo      *repository.DiscussionRepository
	Cases     *repository.CaseRepository
	UploadDir string
}

func NewDiscussionService(repo *repository.DiscussionRepository, cases *repository.CaseRepository) *DiscussionService {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &DiscussionService{Repo: repo, Cases: cases, UploadDir: uploadDir}
}

func (s *DiscussionService) ListDiscussions(caseID int64) ([]entities.DiscussionResponse, error) {
	exists, err := s.Cases.CaseExists(caseID)
	if err != nil {
		return nil, &apperrors.CollaboratorUnavailable{Collaborator: "discussion store", Err: err}
	}
	if !exists {
		return nil, apperrors.ErrNotFound("case not found")
	}
	return s.Repo.ListByCase(caseID)
}

// CreateDiscussion stores attachment files on disk under random names, then
// persists the message and attachment metadata together.
func (s *DiscussionService) CreateDiscussion(caseID, userID int64, content string, files []*multipart.FileHeader) (*entities.DiscussionResponse, error) {
	verr := apperrors.NewValidationError()
	if content == "" {
		verr.Add("content", "content is required")
	} else if len(content) > entities.MaxDiscussionLength {
		verr.Add("content", fmt.Sprintf("content must be at most %d characters", entities.MaxDiscussionLength))
	}
	if verr.HasErrors() {
		return nil, verr
	}

	exists, err := s.Cases.CaseExists(caseID)
	if err != nil {
		return nil, &apperrors.CollaboratorUnavailable{Collaborator: "discussion store", Err: err}
	}
	if !exists {
		return nil, apperrors.ErrNotFound("case not found")
	}

	var attachments []db.DiscussionAttachment
	for _, fh := range files {
		attachment, err := s.storeFile(fh)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *attachment)
	}

	discussion := &db.CaseDiscussion{CaseID: caseID, UserID: userID, Content: content}
	if err := s.Repo.CreateDiscussion(discussion, attachments); err != nil {
		return nil, err
	}

	resp := &entities.DiscussionResponse{
		ID:        discussion.ID,
		CaseID:    discussion.CaseID,
		UserID:    discussion.UserID,
		Content:   discussion.Content,
		CreatedAt: discussion.CreatedAt,
	}
	for _, a := range attachments {
		resp.Attachments = append(resp.Attachments, entities.AttachmentResponse{
			ID:       a.ID,
			Filename: a.Filename,
			MimeType: a.MimeType,
			Size:     a.Size,
		})
	}
	return resp, nil
}

func (s *DiscussionService) storeFile(fh *multipart.FileHeader) (*db.DiscussionAttachment, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file %s: %w", fh.Filename, err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	storedName := uuid.NewString() + filepath.Ext(fh.Filename)
	storedPath := filepath.Join(s.UploadDir, storedName)
	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("error creating attachment file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, fmt.Errorf("error writing attachment file: %w", err)
	}

	logger.S().Debugf("Stored attachment %s as %s (%d bytes)", fh.Filename, storedPath, size)
	return &db.DiscussionAttachment{
		Filename: fh.Filename,
		Filepath: storedPath,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     size,
	}, nil
}
