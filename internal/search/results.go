package search

import (
	"sync"
	"sync/atomic"

	"covoit/pkg/model"
)

type Result struct {
	Seq        uint64          `json:"seq"`
	Criteria   Criteria        `json:"criteria"`
	Listings   []model.Listing `json:"listings"`
	Unverified []int64         `json:"unverified,omitempty"`
	Message    string          `json:"error,omitempty"`
	Err        error           `json:"-"`
	Stale      bool            `json:"stale,omitempty"`
}

// Results is the single "current results" slot. Every search takes a
// sequence number from Begin; a result is only published while its sequence
// is the latest issued, so a slow older search never overwrites a newer one.
type Results struct {
	seq     atomic.Uint64
	mu      sync.RWMutex
	current Result
	set     bool
}

func NewResults() *Results {
	return &Results{}
}

// Begin reserves the next sequence number.
func (r *Results) Begin() uint64 {
	return r.seq.Add(1)
}

func (r *Results) Latest() uint64 {
	return r.seq.Load()
}

// Publish stores res if it belongs to the most recent search and reports
// whether it was stored.
func (r *Results) Publish(res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Seq != r.seq.Load() || (r.set && res.Seq <= r.current.Seq) {
		return false
	}
	r.current = res
	r.set = true
	return true
}

// Current returns the last published result.
func (r *Results) Current() (Result, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.set
}
