package schedule

import (
	"sort"
	"time"
)

// DeriveFreeSlots reduces one participant's availability blocks to the
// ranges they can actually attend. A block with any overlapping booking is
// dropped whole: the conflict filter discards the entire block rather than
// splitting it around the booking. Output is ordered by start time. Empty
// input yields empty output.
func DeriveFreeSlots(ps ParticipantSchedule) []Interval {
	var free []Interval
	for _, block := range ps.Blocks {
		if !block.IsValid() {
			continue
		}
		conflicted := false
		for _, booking := range ps.Bookings {
			if block.Overlaps(booking.Interval) {
				conflicted = true
				break
			}
		}
		if !conflicted {
			free = append(free, block.Interval)
		}
	}
	sort.Slice(free, func(i, j int) bool {
		return free[i].Start.Before(free[j].Start)
	})
	return free
}

// IntersectPair emits the overlap of every pair (x, y) with x from a and y
// from b. All-pairs on purpose: slot lists per participant per range are
// small, and adjacent or duplicate overlaps are deliberately not merged.
func IntersectPair(a, b []Interval) []CommonSlot {
	var out []CommonSlot
	for _, x := range a {
		for _, y := range b {
			start := maxTime(x.Start, y.Start)
			end := minTime(x.End, y.End)
			if start.Before(end) {
				out = append(out, CommonSlot{
					Interval: Interval{Start: start, End: end},
					Kind:     KindOverlap,
				})
			}
		}
	}
	return out
}

// IntersectAll folds IntersectPair across the participants' free-slot
// lists, seeded with the first list. With no participants there is no
// well-defined intersection, so the result is empty. A single participant
// gets their own list back.
func IntersectAll(perParticipant [][]Interval) []CommonSlot {
	if len(perParticipant) == 0 {
		return nil
	}
	acc := perParticipant[0]
	for _, next := range perParticipant[1:] {
		if len(acc) == 0 {
			return nil
		}
		acc = intervalsOf(IntersectPair(acc, next))
	}
	return asCommonSlots(acc)
}

func intervalsOf(slots []CommonSlot) []Interval {
	out := make([]Interval, len(slots))
	for i, s := range slots {
		out[i] = s.Interval
	}
	return out
}

func asCommonSlots(intervals []Interval) []CommonSlot {
	var out []CommonSlot
	for _, iv := range intervals {
		out = append(out, CommonSlot{Interval: iv, Kind: KindOverlap})
	}
	return out
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
