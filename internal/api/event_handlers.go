package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"careteam/internal/entities"
	"careteam/internal/service"
)

type EventHandler struct {
	Service *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{Service: svc}
}

func eventIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.ListEvents()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.Service.GetEvent(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req entities.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.Service.CreateEvent(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req entities.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.Service.UpdateEvent(id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromRequest(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.Service.DeleteEvent(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
