// Package search ranks open ride listings against a user's criteria.
package search

import (
	"sort"
	"time"

	"covoit/pkg/model"
	"covoit/pkg/sanitizer"
)

type Criteria struct {
	Origin      model.Address `json:"adresseDepart"`
	Destination model.Address `json:"adresseArrivee"`
	Target      time.Time     `json:"dateDepart"`
	Flexibility time.Duration `json:"flexibilite"`
}

// AdmissibleWindow is [target - flexibility, target + flexibility], both bounds included.
func AdmissibleWindow(target time.Time, flexibility time.Duration) model.TimeWindow {
	if flexibility < 0 {
		flexibility = -flexibility
	}
	return model.NewTimeWindow(target.Add(-flexibility), target.Add(flexibility))
}

func FilterByWindow(listings []model.Listing, w model.TimeWindow) []model.Listing {
	return filter(listings, func(l model.Listing) bool {
		return w.Contains(l.DepartureTime)
	})
}

// FilterBySeats keeps listings with at least one free passenger seat.
func FilterBySeats(listings []model.Listing) []model.Listing {
	return filter(listings, func(l model.Listing) bool {
		return l.FreeSeats() > 0
	})
}

// FilterByAddress keeps listings whose departure matches origin and whose
// arrival matches destination. An empty query address matches everything.
func FilterByAddress(listings []model.Listing, origin, destination model.Address) []model.Listing {
	return filter(listings, func(l model.Listing) bool {
		return MatchAddress(l.Origin, origin) && MatchAddress(l.Destination, destination)
	})
}

// MatchAddress compares only the fields set in query. House number and postal
// code must be equal once normalized; street and city are matched by
// normalized substring.
func MatchAddress(candidate, query model.Address) bool {
	if q := sanitizer.NormalizeNumber(query.Number); q != "" && sanitizer.NormalizeNumber(candidate.Number) != q {
		return false
	}
	if q := sanitizer.NormalizeNumber(query.PostalCode); q != "" && sanitizer.NormalizeNumber(candidate.PostalCode) != q {
		return false
	}
	if sanitizer.Normalize(query.Street) != "" && !sanitizer.ContainsFold(candidate.Street, query.Street) {
		return false
	}
	if sanitizer.Normalize(query.City) != "" && !sanitizer.ContainsFold(candidate.City, query.City) {
		return false
	}
	return true
}

// SortByProximity orders listings by distance to target, nearest first.
// Ties keep their input order. The input slice is not modified.
func SortByProximity(listings []model.Listing, target time.Time) []model.Listing {
	out := make([]model.Listing, len(listings))
	copy(out, listings)
	sort.SliceStable(out, func(i, j int) bool {
		return distance(out[i].DepartureTime, target) < distance(out[j].DepartureTime, target)
	})
	return out
}

func distance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// Rank applies the window, seat and address filters then sorts by proximity.
// Self exclusion needs rosters and is done separately by ExcludeSelf.
func Rank(listings []model.Listing, c Criteria) []model.Listing {
	ranked := FilterByWindow(listings, AdmissibleWindow(c.Target, c.Flexibility))
	ranked = FilterBySeats(ranked)
	ranked = FilterByAddress(ranked, c.Origin, c.Destination)
	return SortByProximity(ranked, c.Target)
}

// IsParticipant reports whether who matches a roster member on both first
// and last name, ignoring case and diacritics.
func IsParticipant(who model.Identity, roster model.Roster) bool {
	first := sanitizer.Normalize(who.FirstName)
	last := sanitizer.Normalize(who.LastName)
	if first == "" || last == "" {
		return false
	}
	for _, member := range roster.Members() {
		if sanitizer.Normalize(member.FirstName) == first && sanitizer.Normalize(member.LastName) == last {
			return true
		}
	}
	return false
}

// RosterPolicy decides what happens to a listing whose roster is unknown.
type RosterPolicy int

const (
	// KeepUnverified keeps the listing and reports it as unverified.
	KeepUnverified RosterPolicy = iota
	// DropUnverified removes the listing.
	DropUnverified
)

// ExcludeSelf removes listings where self is the driver or a passenger.
// rosters is keyed by listing ID; a missing entry means the roster could not
// be fetched and is handled according to policy. The IDs of kept listings
// without roster data are returned as unverified.
func ExcludeSelf(listings []model.Listing, rosters map[int64]model.Roster, self model.Identity, policy RosterPolicy) (kept []model.Listing, unverified []int64) {
	kept = make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		roster, ok := rosters[l.ID]
		if !ok {
			if policy == DropUnverified {
				continue
			}
			unverified = append(unverified, l.ID)
			kept = append(kept, l)
			continue
		}
		if IsParticipant(self, roster) {
			continue
		}
		kept = append(kept, l)
	}
	return kept, unverified
}

func filter(listings []model.Listing, keep func(model.Listing) bool) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
