package schedule

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) Interval {
	return Interval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func sameIntervalSet(t *testing.T, got []CommonSlot, want []Interval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("want %d slots, got %d: %v", len(want), len(got), got)
	}
	used := make([]bool, len(want))
	for _, g := range got {
		found := false
		for i, w := range want {
			if !used[i] && g.Start.Equal(w.Start) && g.End.Equal(w.End) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			t.Errorf("unexpected slot [%v, %v)", g.Start, g.End)
		}
	}
}

func TestDeriveFreeSlots_NoBookings(t *testing.T) {
	ps := ParticipantSchedule{
		ParticipantID: 1,
		Blocks: []AvailabilityBlock{
			{Interval: iv(13, 0, 17, 0), Kind: KindOnCall},
			{Interval: iv(9, 0, 12, 0), Kind: KindRegular},
		},
	}
	free := DeriveFreeSlots(ps)
	if len(free) != 2 {
		t.Fatalf("want 2 free slots, got %d", len(free))
	}
	// Ordered by start.
	if !free[0].Start.Equal(at(9, 0)) || !free[1].Start.Equal(at(13, 0)) {
		t.Errorf("slots not ordered by start: %v", free)
	}
}

func TestDeriveFreeSlots_DropsWholeBlockOnAnyConflict(t *testing.T) {
	// A booking inside a block drops the whole block, it is not split into
	// [09:00,10:00) + [10:30,12:00).
	ps := ParticipantSchedule{
		ParticipantID: 1,
		Blocks:        []AvailabilityBlock{{Interval: iv(9, 0, 12, 0), Kind: KindRegular}},
		Bookings:      []Booking{{Interval: iv(10, 0, 10, 30)}},
	}
	free := DeriveFreeSlots(ps)
	if len(free) != 0 {
		t.Fatalf("want empty free list, got %v", free)
	}
}

func TestDeriveFreeSlots_DisjointFromBookings(t *testing.T) {
	ps := ParticipantSchedule{
		ParticipantID: 1,
		Blocks: []AvailabilityBlock{
			{Interval: iv(8, 0, 10, 0), Kind: KindRegular},
			{Interval: iv(10, 0, 12, 0), Kind: KindRegular},
			{Interval: iv(14, 0, 16, 0), Kind: KindOnCall},
		},
		Bookings: []Booking{
			{Interval: iv(9, 30, 10, 0)},
			{Interval: iv(15, 0, 15, 30)},
		},
	}
	free := DeriveFreeSlots(ps)
	for _, f := range free {
		for _, b := range ps.Bookings {
			if f.Overlaps(b.Interval) {
				t.Errorf("free slot [%v, %v) overlaps booking [%v, %v)",
					f.Start, f.End, b.Start, b.End)
			}
		}
	}
	// Only the untouched middle block survives. [08:00,10:00) conflicts with
	// the 09:30 booking; [10:00,12:00) abuts it but half-open ranges do not
	// overlap at a shared boundary.
	if len(free) != 1 || !free[0].Start.Equal(at(10, 0)) {
		t.Fatalf("want single [10:00,12:00) slot, got %v", free)
	}
}

func TestDeriveFreeSlots_EmptyInput(t *testing.T) {
	if got := DeriveFreeSlots(ParticipantSchedule{ParticipantID: 7}); len(got) != 0 {
		t.Fatalf("want empty output for empty input, got %v", got)
	}
}

func TestIntersectPair_BasicOverlap(t *testing.T) {
	a := []Interval{iv(9, 0, 11, 0)}
	b := []Interval{iv(10, 0, 12, 0)}
	sameIntervalSet(t, IntersectPair(a, b), []Interval{iv(10, 0, 11, 0)})
}

func TestIntersectPair_Commutative(t *testing.T) {
	a := []Interval{iv(9, 0, 11, 0), iv(13, 0, 15, 0)}
	b := []Interval{iv(10, 0, 14, 0)}
	ab := IntersectPair(a, b)
	ba := IntersectPair(b, a)
	want := []Interval{iv(10, 0, 11, 0), iv(13, 0, 14, 0)}
	sameIntervalSet(t, ab, want)
	sameIntervalSet(t, ba, want)
}

func TestIntersectPair_TouchingBoundariesDoNotOverlap(t *testing.T) {
	a := []Interval{iv(9, 0, 10, 0)}
	b := []Interval{iv(10, 0, 11, 0)}
	if got := IntersectPair(a, b); len(got) != 0 {
		t.Fatalf("adjacent half-open intervals must not intersect, got %v", got)
	}
}

func TestIntersectPair_NoDeduplication(t *testing.T) {
	// Two identical source intervals produce two identical overlaps; the
	// result is not merged or deduplicated.
	a := []Interval{iv(9, 0, 11, 0), iv(9, 0, 11, 0)}
	b := []Interval{iv(10, 0, 12, 0)}
	got := IntersectPair(a, b)
	if len(got) != 2 {
		t.Fatalf("want 2 (duplicate) slots, got %d: %v", len(got), got)
	}
}

func TestIntersectAll_NoParticipants(t *testing.T) {
	if got := IntersectAll(nil); len(got) != 0 {
		t.Fatalf("intersection of no participants must be empty, got %v", got)
	}
	if got := IntersectAll([][]Interval{}); len(got) != 0 {
		t.Fatalf("intersection of no participants must be empty, got %v", got)
	}
}

func TestIntersectAll_SingleParticipantIsIdentity(t *testing.T) {
	s := []Interval{iv(9, 0, 11, 0), iv(13, 0, 14, 0)}
	got := IntersectAll([][]Interval{s})
	sameIntervalSet(t, got, s)
	for _, g := range got {
		if g.Kind != KindOverlap {
			t.Errorf("common slot kind: want %q, got %q", KindOverlap, g.Kind)
		}
	}
}

func TestIntersectAll_TwoParticipants(t *testing.T) {
	a := []Interval{iv(9, 0, 11, 0)}
	b := []Interval{iv(10, 0, 12, 0)}
	sameIntervalSet(t, IntersectAll([][]Interval{a, b}), []Interval{iv(10, 0, 11, 0)})
}

func TestIntersectAll_ThreeParticipants(t *testing.T) {
	a := []Interval{iv(8, 0, 12, 0), iv(14, 0, 18, 0)}
	b := []Interval{iv(9, 0, 15, 0)}
	c := []Interval{iv(10, 0, 16, 30)}
	got := IntersectAll([][]Interval{a, b, c})
	want := []Interval{iv(10, 0, 12, 0), iv(14, 0, 15, 0)}
	sameIntervalSet(t, got, want)
	// Containment: every common slot lies within some interval of every
	// participant's list.
	for _, slot := range got {
		for name, list := range map[string][]Interval{"a": a, "b": b, "c": c} {
			contained := false
			for _, p := range list {
				if p.Contains(slot.Interval) {
					contained = true
					break
				}
			}
			if !contained {
				t.Errorf("slot [%v, %v) not contained in participant %s", slot.Start, slot.End, name)
			}
		}
	}
}

func TestIntersectAll_ParticipantWithNoFreeSlots(t *testing.T) {
	a := []Interval{iv(9, 0, 11, 0)}
	if got := IntersectAll([][]Interval{a, nil}); len(got) != 0 {
		t.Fatalf("any participant with zero free slots empties the intersection, got %v", got)
	}
	if got := IntersectAll([][]Interval{nil, a}); len(got) != 0 {
		t.Fatalf("any participant with zero free slots empties the intersection, got %v", got)
	}
}

func TestIntersectAll_Deterministic(t *testing.T) {
	per := [][]Interval{
		{iv(8, 0, 12, 0), iv(13, 0, 17, 0)},
		{iv(9, 30, 14, 0)},
		{iv(10, 0, 16, 0)},
	}
	first := IntersectAll(per)
	second := IntersectAll(per)
	if len(first) != len(second) {
		t.Fatalf("re-running on fixed inputs changed output size: %v vs %v", first, second)
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Errorf("slot %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}
