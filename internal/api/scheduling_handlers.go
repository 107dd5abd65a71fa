package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"careteam/internal/auth"
	"careteam/internal/entities"
	"careteam/internal/service"
	"careteam/internal/utils"
)

// SchedulingHandler exposes team availability discovery and session
// scheduling for a case.
type SchedulingHandler struct {
	Availability service.TeamAvailabilityChecker
	Sessions     service.SessionScheduler
}

func NewSchedulingHandler(availability service.TeamAvailabilityChecker, sessions service.SessionScheduler) *SchedulingHandler {
	return &SchedulingHandler{Availability: availability, Sessions: sessions}
}

func caseIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func (h *SchedulingHandler) GetTeamAvailability(w http.ResponseWriter, r *http.Request) {
	caseID, ok := caseIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid case id")
		return
	}

	start, err := utils.ParseTimeParam(r.URL.Query().Get("start_date"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid start_date: "+err.Error())
		return
	}
	end, err := utils.ParseTimeParam(r.URL.Query().Get("end_date"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid end_date: "+err.Error())
		return
	}
	if !start.Before(end) {
		writeErrorMessage(w, http.StatusBadRequest, "start_date must be before end_date")
		return
	}

	resp, err := h.Availability.GetTeamAvailability(caseID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SchedulingHandler) ScheduleSession(w http.ResponseWriter, r *http.Request) {
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

	var req entities.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Sessions.ScheduleSession(caseID, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *SchedulingHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	caseID, ok := caseIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid case id")
		return
	}

	sessions, err := h.Sessions.ListSessions(caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}
