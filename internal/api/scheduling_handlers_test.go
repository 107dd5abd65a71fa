package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careteam/internal/auth"
	"careteam/internal/entities"
	apperrors "careteam/internal/errors"
	"careteam/internal/schedule"
)

type fakeAvailability struct {
	resp *entities.TeamAvailabilityResponse
	err  error
}

func (f *fakeAvailability) GetTeamAvailability(caseID int64, start, end time.Time) (*entities.TeamAvailabilityResponse, error) {
	return f.resp, f.err
}

type fakeScheduler struct {
	resp *entities.SessionResponse
	err  error
}

func (f *fakeScheduler) ScheduleSession(caseID, createdBy int64, req *entities.SessionRequest) (*entities.SessionResponse, error) {
	return f.resp, f.err
}

func (f *fakeScheduler) ListSessions(caseID int64) ([]entities.SessionResponse, error) {
	return nil, f.err
}

func newAvailabilityRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return mux.SetURLVars(req, map[string]string{"id": "42"})
}

func TestGetTeamAvailability_OK(t *testing.T) {
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	handler := NewSchedulingHandler(&fakeAvailability{resp: &entities.TeamAvailabilityResponse{
		IndividualAvailability: map[int64][]schedule.Interval{
			1: {{Start: start, End: start.Add(time.Hour)}},
		},
		CommonSlots: []schedule.CommonSlot{
			{Interval: schedule.Interval{Start: start, End: start.Add(time.Hour)}, Kind: schedule.KindOverlap},
		},
	}}, nil)

	rec := httptest.NewRecorder()
	handler.GetTeamAvailability(rec,
		newAvailabilityRequest("/api/cases/42/team/availability?start_date=2026-03-09&end_date=2026-03-10"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		IndividualAvailability map[string][]schedule.Interval `json:"individual_availability"`
		CommonSlots            []schedule.CommonSlot          `json:"common_slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.IndividualAvailability["1"], 1)
	require.Len(t, body.CommonSlots, 1)
	assert.Equal(t, schedule.KindOverlap, body.CommonSlots[0].Kind)
}

func TestGetTeamAvailability_BadDates(t *testing.T) {
	handler := NewSchedulingHandler(&fakeAvailability{}, nil)

	for name, target := range map[string]string{
		"missing":  "/api/cases/42/team/availability",
		"garbage":  "/api/cases/42/team/availability?start_date=whenever&end_date=2026-03-10",
		"inverted": "/api/cases/42/team/availability?start_date=2026-03-10&end_date=2026-03-09",
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.GetTeamAvailability(rec, newAvailabilityRequest(target))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetTeamAvailability_StoreUnavailable(t *testing.T) {
	handler := NewSchedulingHandler(&fakeAvailability{
		err: &apperrors.CollaboratorUnavailable{Collaborator: "schedule store"},
	}, nil)

	rec := httptest.NewRecorder()
	handler.GetTeamAvailability(rec,
		newAvailabilityRequest("/api/cases/42/team/availability?start_date=2026-03-09&end_date=2026-03-10"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func scheduleRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/cases/42/sessions", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	return req.WithContext(auth.WithUserID(req.Context(), 7))
}

func TestScheduleSession_Created(t *testing.T) {
	handler := NewSchedulingHandler(nil, &fakeScheduler{resp: &entities.SessionResponse{
		ID:     101,
		CaseID: 42,
		Status: entities.SessionStatusScheduled,
	}})

	rec := httptest.NewRecorder()
	handler.ScheduleSession(rec, scheduleRequest(t,
		`{"scheduled_start":"2026-03-09T10:00:00Z","duration_minutes":60,"participant_ids":[1,2],"title":"Tumor board","session_type":"video"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp entities.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(101), resp.ID)
}

func TestScheduleSession_Conflict(t *testing.T) {
	handler := NewSchedulingHandler(nil, &fakeScheduler{
		err: &apperrors.SchedulingConflict{ParticipantIDs: []int64{2, 5}},
	})

	rec := httptest.NewRecorder()
	handler.ScheduleSession(rec, scheduleRequest(t,
		`{"scheduled_start":"2026-03-09T10:00:00Z","duration_minutes":60,"participant_ids":[1,2],"title":"Tumor board","session_type":"video"}`))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "2, 5")
}

func TestScheduleSession_ValidationFailure(t *testing.T) {
	handler := NewSchedulingHandler(nil, &fakeScheduler{
		err: apperrors.NewValidationError().Add("duration_minutes", "duration must be between 15 and 240 minutes"),
	})

	rec := httptest.NewRecorder()
	handler.ScheduleSession(rec, scheduleRequest(t,
		`{"scheduled_start":"2026-03-09T10:00:00Z","duration_minutes":5,"participant_ids":[1],"title":"x","session_type":"video"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "duration_minutes")
}

func TestScheduleSession_InvalidBody(t *testing.T) {
	handler := NewSchedulingHandler(nil, &fakeScheduler{})

	rec := httptest.NewRecorder()
	handler.ScheduleSession(rec, scheduleRequest(t, `{not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleSession_Unauthenticated(t *testing.T) {
	handler := NewSchedulingHandler(nil, &fakeScheduler{})

	req := httptest.NewRequest(http.MethodPost, "/api/cases/42/sessions", strings.NewReader(`{}`))
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()
	handler.ScheduleSession(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
