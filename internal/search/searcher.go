package search

import (
	"context"
	"sync"
	"time"

	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"

	"golang.org/x/sync/errgroup"
)

type ListingAPI interface {
	List(ctx context.Context) ([]model.Listing, error)
	Participants(ctx context.Context, id int64) (*model.Roster, error)
}

type ProfileAPI interface {
	Get(ctx context.Context) (*model.Profile, error)
}

type Options struct {
	DefaultFlexibility   time.Duration
	MaxConcurrentRosters int
	RosterPolicy         RosterPolicy
}

type Searcher struct {
	listings ListingAPI
	profile  ProfileAPI
	results  *Results
	opts     Options
	log      *logger.Logger
}

func NewSearcher(listings ListingAPI, profile ProfileAPI, opts Options, log *logger.Logger) *Searcher {
	if opts.MaxConcurrentRosters <= 0 {
		opts.MaxConcurrentRosters = 1
	}
	return &Searcher{
		listings: listings,
		profile:  profile,
		results:  NewResults(),
		opts:     opts,
		log:      log,
	}
}

// DefaultFlexibility is the gap front ends use when the caller gave none.
// An explicit zero is an exact-time search and is passed through as is.
func (s *Searcher) DefaultFlexibility() time.Duration {
	return s.opts.DefaultFlexibility
}

// Results exposes the slot holding the latest search outcome.
func (s *Searcher) Results() *Results {
	return s.results
}

// Search runs one query end to end. The returned Result is marked Stale when
// a newer search was started before this one finished; stale results are
// never published to the slot.
func (s *Searcher) Search(ctx context.Context, c Criteria) Result {
	seq := s.results.Begin()

	res := s.run(ctx, c)
	res.Seq = seq
	res.Criteria = c
	res.Stale = !s.results.Publish(res)
	if res.Stale {
		s.log.Debug("Discarded stale search result", "seq", seq, "latest", s.results.Latest())
	}
	return res
}

func (s *Searcher) run(ctx context.Context, c Criteria) Result {
	var (
		listings   []model.Listing
		profile    *model.Profile
		errList    error
		errProfile error
		wg         sync.WaitGroup
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		listings, errList = s.listings.List(ctx)
		if errList != nil {
			s.log.Error("Failed to fetch listings", "error", errList)
		}
	}()

	go func() {
		defer wg.Done()
		profile, errProfile = s.profile.Get(ctx)
		if errProfile != nil {
			s.log.Error("Failed to fetch profile", "error", errProfile)
		}
	}()

	wg.Wait()
	if errList != nil {
		return failed(errList)
	}
	if errProfile != nil {
		return failed(errProfile)
	}

	ranked := Rank(listings, c)
	rosters, err := s.fetchRosters(ctx, ranked)
	if err != nil {
		return failed(err)
	}

	kept, unverified := ExcludeSelf(ranked, rosters, profile.Identity, s.opts.RosterPolicy)
	if len(unverified) > 0 {
		s.log.Warn("Some listings were kept without participant data",
			"listing_ids", unverified,
		)
	}

	return Result{Listings: kept, Unverified: unverified}
}

// fetchRosters loads the participants of every listing with bounded
// concurrency. A failed fetch leaves the listing out of the map; only
// cancellation of ctx aborts the whole fan-out.
func (s *Searcher) fetchRosters(ctx context.Context, listings []model.Listing) (map[int64]model.Roster, error) {
	rosters := make(map[int64]model.Roster, len(listings))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrentRosters)

	for _, l := range listings {
		id := l.ID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			roster, err := s.listings.Participants(gctx, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.log.Warn("Failed to fetch listing participants", "listing_id", id, "error", err)
				return nil
			}
			if roster == nil {
				roster = &model.Roster{}
			}
			mu.Lock()
			rosters[id] = *roster
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rosters, nil
}

func failed(err error) Result {
	return Result{
		Listings: []model.Listing{},
		Message:  apperrors.UserMessage(err),
		Err:      err,
	}
}
