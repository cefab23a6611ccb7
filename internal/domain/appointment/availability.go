package appointment

import "time"

type AvailabilityInput struct {
	BranchID  uint
	ServiceID uint
	// StaffID zero means branch-wide: availability is computed against
	// every staff member's bookings for the service at the branch.
	StaffID uint
	Date    time.Time
}

// Interval is a half-open busy period [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slots generates candidate start times from open at a fixed stride and
// keeps those whose [t, t+duration) fits the window and overlaps no busy
// interval. Candidates come out ordered, earliest first.
func Slots(open, close time.Time, duration, stride time.Duration, busy []Interval) []time.Time {
	slots := []time.Time{}
	if duration <= 0 || stride <= 0 || !close.After(open) {
		return slots
	}

	for t := open; !t.Add(duration).After(close); t = t.Add(stride) {
		if !overlapsAny(t, t.Add(duration), busy) {
			slots = append(slots, t)
		}
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		// [start, end) overlaps [b.Start, b.End) iff start < b.End && b.Start < end.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
