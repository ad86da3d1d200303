package search

import (
	"testing"
	"time"

	"covoit/pkg/model"
)

var target = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

func listingAt(id int64, departure time.Time) model.Listing {
	return model.Listing{
		ID:            id,
		DepartureTime: departure,
		TotalSeats:    4,
		Origin:        model.Address{City: "Nîmes", PostalCode: "30000", Number: "12", Street: "Rue de la République"},
		Destination:   model.Address{City: "Montpellier", PostalCode: "34000"},
	}
}

func ids(listings []model.Listing) []int64 {
	out := make([]int64, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAdmissibleWindow_InclusiveBounds(t *testing.T) {
	w := AdmissibleWindow(target, 2*time.Hour)
	if !w.Start.Equal(target.Add(-2*time.Hour)) || !w.End.Equal(target.Add(2*time.Hour)) {
		t.Fatalf("unexpected window %+v", w)
	}

	listings := []model.Listing{
		listingAt(1, target.Add(2*time.Hour)),
		listingAt(2, target.Add(2*time.Hour+time.Minute)),
		listingAt(3, target.Add(-2*time.Hour)),
		listingAt(4, target.Add(-2*time.Hour-time.Minute)),
	}
	got := ids(FilterByWindow(listings, w))
	if !equalIDs(got, []int64{1, 3}) {
		t.Errorf("expected 16:00 and 12:00 kept, 16:01 and 11:59 dropped, got %v", got)
	}
}

func TestFilterBySeats(t *testing.T) {
	full := listingAt(1, target)
	full.OccupiedSeats = 3
	oneLeft := listingAt(2, target)
	oneLeft.OccupiedSeats = 2

	got := ids(FilterBySeats([]model.Listing{full, oneLeft}))
	if !equalIDs(got, []int64{2}) {
		t.Errorf("4 seats with 3 occupied must be excluded, got %v", got)
	}
}

func TestMatchAddress(t *testing.T) {
	candidate := model.Address{Number: "12", Street: "Rue de la République", PostalCode: "30000", City: "nimes"}

	tests := []struct {
		name  string
		query model.Address
		want  bool
	}{
		{"empty query", model.Address{}, true},
		{"city with accent", model.Address{City: "Nîmes"}, true},
		{"other city", model.Address{City: "Nice"}, false},
		{"city fragment", model.Address{City: "  NÎM "}, true},
		{"street fragment", model.Address{Street: "republique"}, true},
		{"postal code with space", model.Address{PostalCode: "30 000"}, true},
		{"postal code prefix is not enough", model.Address{PostalCode: "300"}, false},
		{"house number exact", model.Address{Number: " 12 "}, true},
		{"house number substring", model.Address{Number: "1"}, false},
		{"all fields must match", model.Address{City: "Nîmes", Number: "14"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchAddress(candidate, tt.query); got != tt.want {
				t.Errorf("MatchAddress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterByAddress_OriginAndDestinationIndependent(t *testing.T) {
	a := listingAt(1, target)
	b := listingAt(2, target)
	b.Destination.City = "Nice"

	got := ids(FilterByAddress([]model.Listing{a, b}, model.Address{City: "nimes"}, model.Address{City: "montpellier"}))
	if !equalIDs(got, []int64{1}) {
		t.Errorf("expected only listing 1, got %v", got)
	}
}

func TestSortByProximity_Stable(t *testing.T) {
	listings := []model.Listing{
		listingAt(1, target.Add(90*time.Minute)),
		listingAt(2, target.Add(-30*time.Minute)),
		listingAt(3, target.Add(30*time.Minute)),
		listingAt(4, target),
		listingAt(5, target.Add(-90*time.Minute)),
	}

	got := ids(SortByProximity(listings, target))
	if !equalIDs(got, []int64{4, 2, 3, 1, 5}) {
		t.Errorf("unexpected order %v", got)
	}
	if listings[0].ID != 1 {
		t.Errorf("input slice must not be reordered")
	}
}

func TestRank(t *testing.T) {
	full := listingAt(3, target)
	full.OccupiedSeats = 3
	elsewhere := listingAt(4, target)
	elsewhere.Origin.City = "Alès"

	listings := []model.Listing{
		listingAt(1, target.Add(time.Hour)),
		listingAt(2, target.Add(3*time.Hour)),
		full,
		elsewhere,
		listingAt(5, target.Add(-10*time.Minute)),
	}

	got := ids(Rank(listings, Criteria{
		Origin:      model.Address{City: "NIMES"},
		Target:      target,
		Flexibility: 2 * time.Hour,
	}))
	if !equalIDs(got, []int64{5, 1}) {
		t.Errorf("unexpected ranking %v", got)
	}
}

func TestIsParticipant(t *testing.T) {
	roster := model.Roster{
		Driver:     model.Identity{FirstName: "eric", LastName: "DUPONT"},
		Passengers: []model.Identity{{FirstName: "Anne", LastName: "Martin"}},
	}

	tests := []struct {
		name string
		who  model.Identity
		want bool
	}{
		{"driver with accents and case", model.Identity{FirstName: "Éric", LastName: "Dupont"}, true},
		{"passenger", model.Identity{FirstName: "anne", LastName: "martin"}, true},
		{"first name only", model.Identity{FirstName: "Éric", LastName: "Durand"}, false},
		{"last name only", model.Identity{FirstName: "Paul", LastName: "Dupont"}, false},
		{"name crossed between members", model.Identity{FirstName: "Anne", LastName: "Dupont"}, false},
		{"empty identity", model.Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsParticipant(tt.who, roster); got != tt.want {
				t.Errorf("IsParticipant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExcludeSelf(t *testing.T) {
	self := model.Identity{FirstName: "Éric", LastName: "Dupont"}
	listings := []model.Listing{listingAt(1, target), listingAt(2, target), listingAt(3, target)}
	rosters := map[int64]model.Roster{
		1: {Driver: model.Identity{FirstName: "eric", LastName: "DUPONT"}},
		2: {Driver: model.Identity{FirstName: "Anne", LastName: "Martin"}},
	}

	kept, unverified := ExcludeSelf(listings, rosters, self, KeepUnverified)
	if !equalIDs(ids(kept), []int64{2, 3}) {
		t.Errorf("expected listings 2 and 3 kept, got %v", ids(kept))
	}
	if !equalIDs(unverified, []int64{3}) {
		t.Errorf("listing 3 should be reported unverified, got %v", unverified)
	}

	kept, unverified = ExcludeSelf(listings, rosters, self, DropUnverified)
	if !equalIDs(ids(kept), []int64{2}) || len(unverified) != 0 {
		t.Errorf("drop policy should keep only listing 2, got %v / %v", ids(kept), unverified)
	}
}
