package schedule

import "time"

// Block kinds as stored in availability_blocks.kind.
const (
	KindRegular = "regular"
	KindOnCall  = "on-call"
	KindOverlap = "overlap"
)

// Interval is a half-open time range [Start, End). A valid interval has
// Start strictly before End.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsValid reports whether Start is strictly before End.
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether two half-open intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// AvailabilityBlock is a declared free period for one participant on one
// day, before any conflicts are subtracted.
type AvailabilityBlock struct {
	Interval
	Kind string `json:"type"`
}

// Booking is a committed session occupying part of a participant's time.
type Booking struct {
	Interval
}

// ParticipantSchedule holds one participant's availability blocks and
// existing bookings for a single queried date range. It is built fresh per
// request and never persisted.
type ParticipantSchedule struct {
	ParticipantID int64
	Blocks        []AvailabilityBlock
	Bookings      []Booking
}

// CommonSlot is a time range free for every participant in a proposed
// group. Kind is always KindOverlap.
type CommonSlot struct {
	Interval
	Kind string `json:"type"`
}
