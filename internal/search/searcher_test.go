package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

type mockListings struct {
	listings    []model.Listing
	listErr     error
	rosters     map[int64]model.Roster
	rosterErrs  map[int64]error
	listGate    func(call int32)
	listCalls   atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	rosterDelay time.Duration
}

func (m *mockListings) List(context.Context) ([]model.Listing, error) {
	call := m.listCalls.Add(1)
	if m.listGate != nil {
		m.listGate(call)
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listings, nil
}

func (m *mockListings) Participants(ctx context.Context, id int64) (*model.Roster, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		peak := m.maxInFlight.Load()
		if n <= peak || m.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	if m.rosterDelay > 0 {
		select {
		case <-time.After(m.rosterDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := m.rosterErrs[id]; err != nil {
		return nil, err
	}
	r := m.rosters[id]
	return &r, nil
}

type mockProfile struct {
	profile *model.Profile
	err     error
}

func (m *mockProfile) Get(context.Context) (*model.Profile, error) {
	return m.profile, m.err
}

var eric = &model.Profile{ID: 1, Identity: model.Identity{FirstName: "Éric", LastName: "Dupont"}}

func criteria() Criteria {
	return Criteria{Target: target, Flexibility: 2 * time.Hour}
}

func TestSearch_ExcludesOwnListings(t *testing.T) {
	listings := &mockListings{
		listings: []model.Listing{listingAt(1, target), listingAt(2, target.Add(time.Hour))},
		rosters: map[int64]model.Roster{
			1: {Driver: model.Identity{FirstName: "eric", LastName: "DUPONT"}},
			2: {Driver: model.Identity{FirstName: "Anne", LastName: "Martin"}},
		},
	}
	s := NewSearcher(listings, &mockProfile{profile: eric}, Options{MaxConcurrentRosters: 4}, logger.Discard())

	res := s.Search(context.Background(), criteria())
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !equalIDs(ids(res.Listings), []int64{2}) {
		t.Errorf("expected only listing 2, got %v", ids(res.Listings))
	}
	if res.Stale {
		t.Errorf("single search must not be stale")
	}
	current, ok := s.Results().Current()
	if !ok || current.Seq != res.Seq {
		t.Errorf("result should be published to the slot")
	}
}

func TestSearch_RosterFailureKeepsListing(t *testing.T) {
	listings := &mockListings{
		listings:   []model.Listing{listingAt(1, target)},
		rosterErrs: map[int64]error{1: apperrors.Network(errors.New("reset"))},
	}
	s := NewSearcher(listings, &mockProfile{profile: eric}, Options{MaxConcurrentRosters: 2}, logger.Discard())

	res := s.Search(context.Background(), criteria())
	if !equalIDs(ids(res.Listings), []int64{1}) {
		t.Errorf("listing must be kept on roster failure, got %v", ids(res.Listings))
	}
	if !equalIDs(res.Unverified, []int64{1}) {
		t.Errorf("listing must be flagged unverified, got %v", res.Unverified)
	}

	strict := NewSearcher(listings, &mockProfile{profile: eric}, Options{RosterPolicy: DropUnverified}, logger.Discard())
	if res := strict.Search(context.Background(), criteria()); len(res.Listings) != 0 {
		t.Errorf("drop policy must remove unverified listings, got %v", ids(res.Listings))
	}
}

func TestSearch_FetchFailureYieldsEmptyResult(t *testing.T) {
	tests := []struct {
		name     string
		listings *mockListings
		profile  *mockProfile
	}{
		{"listing fetch fails", &mockListings{listErr: apperrors.Network(nil)}, &mockProfile{profile: eric}},
		{"profile fetch fails", &mockListings{listings: []model.Listing{listingAt(1, target)}}, &mockProfile{err: apperrors.FromResponse(401, nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearcher(tt.listings, tt.profile, Options{}, logger.Discard())

			// A successful search first, so a stale cache would be visible.
			ok := NewSearcher(&mockListings{listings: []model.Listing{listingAt(9, target)}}, &mockProfile{profile: eric}, Options{}, logger.Discard())
			ok.results = s.results
			ok.Search(context.Background(), criteria())

			res := s.Search(context.Background(), criteria())
			if res.Err == nil || res.Message == "" {
				t.Fatalf("expected a user visible error, got %+v", res)
			}
			if res.Listings == nil || len(res.Listings) != 0 {
				t.Errorf("expected an empty result set, got %v", res.Listings)
			}
			current, _ := s.Results().Current()
			if len(current.Listings) != 0 {
				t.Errorf("previous results must not survive a failure, got %v", ids(current.Listings))
			}
		})
	}
}

func TestSearch_BoundedRosterFanOut(t *testing.T) {
	var all []model.Listing
	for i := int64(1); i <= 12; i++ {
		all = append(all, listingAt(i, target))
	}
	listings := &mockListings{listings: all, rosterDelay: 5 * time.Millisecond}
	s := NewSearcher(listings, &mockProfile{profile: eric}, Options{MaxConcurrentRosters: 3}, logger.Discard())

	res := s.Search(context.Background(), criteria())
	if len(res.Listings) != 12 {
		t.Fatalf("expected 12 listings, got %d", len(res.Listings))
	}
	if peak := listings.maxInFlight.Load(); peak > 3 {
		t.Errorf("at most 3 concurrent roster fetches expected, saw %d", peak)
	}
}

func TestSearch_CancelledContextAbortsFanOut(t *testing.T) {
	listings := &mockListings{
		listings:    []model.Listing{listingAt(1, target), listingAt(2, target)},
		rosterDelay: time.Second,
	}
	s := NewSearcher(listings, &mockProfile{profile: eric}, Options{MaxConcurrentRosters: 2}, logger.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	res := s.Search(ctx, criteria())
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", res.Err)
	}
	if len(res.Listings) != 0 {
		t.Errorf("cancelled search must return no listings")
	}
}

func TestSearch_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	firstStarted := make(chan struct{})
	listings := &mockListings{
		listings: []model.Listing{listingAt(1, target)},
		listGate: func(call int32) {
			if call == 1 {
				close(firstStarted)
				<-release
			}
		},
	}
	s := NewSearcher(listings, &mockProfile{profile: eric}, Options{MaxConcurrentRosters: 1}, logger.Discard())

	var wg sync.WaitGroup
	var first Result
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = s.Search(context.Background(), criteria())
	}()

	<-firstStarted
	second := s.Search(context.Background(), Criteria{Target: target, Flexibility: time.Hour})
	close(release)
	wg.Wait()

	if second.Stale {
		t.Errorf("latest search must be published")
	}
	if !first.Stale {
		t.Errorf("older search finishing last must be discarded")
	}
	current, _ := s.Results().Current()
	if current.Seq != second.Seq || current.Criteria.Flexibility != time.Hour {
		t.Errorf("slot must hold the latest search, got seq %d", current.Seq)
	}
}

func TestSearch_ZeroFlexibilityIsExact(t *testing.T) {
	listings := &mockListings{listings: []model.Listing{
		listingAt(1, target.Add(time.Minute)),
		listingAt(2, target),
	}}
	s := NewSearcher(listings, &mockProfile{profile: eric}, Options{DefaultFlexibility: 2 * time.Hour}, logger.Discard())

	if s.DefaultFlexibility() != 2*time.Hour {
		t.Errorf("DefaultFlexibility() = %s", s.DefaultFlexibility())
	}

	res := s.Search(context.Background(), Criteria{Target: target})
	if res.Criteria.Flexibility != 0 {
		t.Errorf("zero flexibility must be kept, got %s", res.Criteria.Flexibility)
	}
	if len(res.Listings) != 1 || res.Listings[0].ID != 2 {
		t.Errorf("only the listing at the exact time should match, got %+v", res.Listings)
	}
}

func TestResults_PublishOrder(t *testing.T) {
	r := NewResults()
	a := r.Begin()
	b := r.Begin()

	if r.Publish(Result{Seq: a}) {
		t.Errorf("older sequence must be rejected")
	}
	if !r.Publish(Result{Seq: b}) {
		t.Errorf("latest sequence must be accepted")
	}
	if r.Publish(Result{Seq: b}) {
		t.Errorf("same sequence must not be published twice")
	}
}
