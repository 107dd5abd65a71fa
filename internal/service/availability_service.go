package service

import (
	"time"

	"careteam/internal/entities"
	apperrors "careteam/internal/errors"
	"careteam/internal/logger"
	"careteam/internal/repository"
	"careteam/internal/schedule"
)

// TeamAvailabilityChecker computes, for a case's team and a date range, each
// member's free slots and the common slots free for all of them.
type TeamAvailabilityChecker interface {
	GetTeamAvailability(caseID int64, start, end time.Time) (*entities.TeamAvailabilityResponse, error)
}

// CaseChecker confirms a case exists before availability is computed.
type CaseChecker interface {
	CaseExists(id int64) (bool, error)
}

type AvailabilityService struct {
	Schedules repository.ScheduleStore
	Cases     CaseChecker
}

func NewAvailabilityService(schedules repository.ScheduleStore, cases CaseChecker) *AvailabilityService {
	return &AvailabilityService{Schedules: schedules, Cases: cases}
}

func (s *AvailabilityService) GetTeamAvailability(caseID int64, start, end time.Time) (*entities.TeamAvailabilityResponse, error) {
	if s.Cases != nil {
		exists, err := s.Cases.CaseExists(caseID)
		if err != nil {
			return nil, &apperrors.CollaboratorUnavailable{Collaborator: "case store", Err: err}
		}
		if !exists {
			return nil, apperrors.ErrNotFound("case not found")
		}
	}

	memberIDs, err := s.Schedules.GetTeamMemberIDs(caseID)
	if err != nil {
		return nil, &apperrors.CollaboratorUnavailable{Collaborator: "schedule store", Err: err}
	}

	resp := &entities.TeamAvailabilityResponse{
		RequestedStart:         start,
		RequestedEnd:           end,
		IndividualAvailability: make(map[int64][]schedule.Interval),
	}
	if len(memberIDs) == 0 {
		return resp, nil
	}

	blocks, err := s.Schedules.GetAvailabilityBlocks(memberIDs, start, end)
	if err != nil {
		return nil, &apperrors.CollaboratorUnavailable{Collaborator: "schedule store", Err: err}
	}
	bookings, err := s.Schedules.GetBookings(memberIDs, start, end)
	if err != nil {
		return nil, &apperrors.CollaboratorUnavailable{Collaborator: "schedule store", Err: err}
	}

	perParticipant := make([][]schedule.Interval, 0, len(memberIDs))
	for _, userID := range memberIDs {
		free := schedule.DeriveFreeSlots(schedule.ParticipantSchedule{
			ParticipantID: userID,
			Blocks:        blocks[userID],
			Bookings:      bookings[userID],
		})
		resp.IndividualAvailability[userID] = free
		perParticipant = append(perParticipant, free)
	}

	resp.CommonSlots = schedule.IntersectAll(perParticipant)
	logger.S().Debugf("Computed availability for case %d: %d members, %d common slots",
		caseID, len(memberIDs), len(resp.CommonSlots))
	return resp, nil
}
