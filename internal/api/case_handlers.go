package api

import (
	"net/http"

	"careteam/internal/auth"
	apperrors "careteam/internal/errors"
	"careteam/internal/repository"
	"careteam/internal/service"
)

// Uploads larger than this are rejected outright.
const maxUploadBytes = 10 << 20

type CaseHandler struct {
	Cases       *repository.CaseRepository
	Discussions *service.DiscussionService
}

func NewCaseHandler(cases *repository.CaseRepository, discussions *service.DiscussionService) *CaseHandler {
	return &CaseHandler{Cases: cases, Discussions: discussions}
}

func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.Cases.ListCases()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	caseID, ok := caseIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid case id")
		return
	}

	c, err := h.Cases.GetCase(caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	if c == nil {
		writeError(w, apperrors.ErrNotFound("case not found"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CaseHandler) ListDiscussions(w http.ResponseWriter, r *http.Request) {
	caseID, ok := caseIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid case id")
		return
	}

	discussions, err := h.Discussions.ListDiscussions(caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discussions)
}

// CreateDiscussion accepts multipart form data: a "content" field plus any
// number of "attachments" files.
func (h *CaseHandler) CreateDiscussion(w http.ResponseWriter, r *http.Request) {
	caseID, ok := caseIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid case id")
		return
	}

	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	content := r.FormValue("content")
	files := r.MultipartForm.File["attachments"]

	discussion, err := h.Discussions.CreateDiscussion(caseID, userID, content, files)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": discussion,
	})
}
