package entities

import (
	"time"

	"careteam/internal/schedule"
)

// TeamAvailabilityResponse is the payload for the team availability query:
// each team member's free intervals plus the ranges in which all of them
// are simultaneously free.
type TeamAvailabilityResponse struct {
	RequestedStart         time.Time                     `json:"requested_start"`
	RequestedEnd           time.Time                     `json:"requested_end"`
	IndividualAvailability map[int64][]schedule.Interval `json:"individual_availability"`
	CommonSlots            []schedule.CommonSlot         `json:"common_slots"`
}
