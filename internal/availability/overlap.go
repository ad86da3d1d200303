package availability

import "covoit/pkg/model"

// IsValidWindow reports whether w starts strictly before it ends.
func IsValidWindow(w model.TimeWindow) bool {
	return w.Start.Before(w.End)
}

// Overlaps reports whether two half-open windows share an instant.
// Windows that only touch at an endpoint do not overlap.
func Overlaps(a, b model.TimeWindow) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// HasOverlap reports whether candidate overlaps any existing window.
// The candidate must already satisfy IsValidWindow.
func HasOverlap(candidate model.TimeWindow, existing []model.TimeWindow) bool {
	for _, w := range existing {
		if Overlaps(candidate, w) {
			return true
		}
	}
	return false
}

// Conflicts returns the reservations overlapping candidate, in input order.
func Conflicts(candidate model.TimeWindow, existing []model.ReservationInterval) []model.ReservationInterval {
	var out []model.ReservationInterval
	for _, r := range existing {
		if Overlaps(candidate, r.TimeWindow) {
			out = append(out, r)
		}
	}
	return out
}
