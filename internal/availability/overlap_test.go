package availability

import (
	"testing"
	"time"

	"covoit/pkg/model"
)

var base = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func window(startHour, endHour int) model.TimeWindow {
	return model.NewTimeWindow(base.Add(time.Duration(startHour)*time.Hour), base.Add(time.Duration(endHour)*time.Hour))
}

func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name      string
		candidate model.TimeWindow
		existing  []model.TimeWindow
		want      bool
	}{
		{"empty set", window(8, 10), nil, false},
		{"touching before", window(8, 10), []model.TimeWindow{window(10, 12)}, false},
		{"touching after", window(10, 12), []model.TimeWindow{window(8, 10)}, false},
		{"partial overlap", window(8, 11), []model.TimeWindow{window(10, 12)}, true},
		{"contained", window(9, 10), []model.TimeWindow{window(8, 12)}, true},
		{"containing", window(6, 14), []model.TimeWindow{window(8, 12)}, true},
		{"identical", window(8, 12), []model.TimeWindow{window(8, 12)}, true},
		{"one of many", window(13, 15), []model.TimeWindow{window(8, 10), window(14, 16)}, true},
		{"disjoint", window(13, 14), []model.TimeWindow{window(8, 10), window(15, 16)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasOverlap(tt.candidate, tt.existing); got != tt.want {
				t.Errorf("HasOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	windows := []model.TimeWindow{window(8, 10), window(9, 11), window(10, 12), window(0, 24), window(11, 12)}
	for _, a := range windows {
		if !Overlaps(a, a) {
			t.Errorf("a valid window must overlap itself: %+v", a)
		}
		for _, b := range windows {
			if Overlaps(a, b) != Overlaps(b, a) {
				t.Errorf("overlap not symmetric for %+v and %+v", a, b)
			}
		}
	}
}

func TestOverlaps_ComparesInstantsAcrossZones(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 10:00 Paris is 08:00 UTC in June.
	a := model.NewTimeWindow(time.Date(2025, 6, 1, 10, 0, 0, 0, paris), time.Date(2025, 6, 1, 12, 0, 0, 0, paris))
	if Overlaps(a, window(6, 8)) {
		t.Errorf("windows touching at 08:00 UTC must not overlap")
	}
	if !Overlaps(a, window(7, 9)) {
		t.Errorf("windows sharing 08:00-09:00 UTC must overlap")
	}
}

func TestIsValidWindow(t *testing.T) {
	if !IsValidWindow(window(8, 9)) {
		t.Errorf("8-9 should be valid")
	}
	if IsValidWindow(window(9, 9)) {
		t.Errorf("empty window should be invalid")
	}
	if IsValidWindow(window(10, 9)) {
		t.Errorf("inverted window should be invalid")
	}
}

func TestConflicts(t *testing.T) {
	existing := []model.ReservationInterval{
		{ID: 1, TimeWindow: window(8, 10)},
		{ID: 2, TimeWindow: window(10, 12)},
		{ID: 3, TimeWindow: window(11, 13)},
	}
	got := Conflicts(window(10, 12), existing)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("unexpected conflicts %+v", got)
	}
}
