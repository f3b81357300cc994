package server

import (
	"context"
	"sync"

	"silverradar/internal/flips"
	"silverradar/internal/logging"
)

// Fetcher runs one full fetch → derive pass.
type Fetcher interface {
	Fetch(ctx context.Context) flips.Result
}

// Refresher owns the latest snapshot for one region and guards it against
// out-of-order fetches: every refresh takes a monotonically increasing
// sequence number, and a slower response that finishes after a newer one
// can never overwrite it.
type Refresher struct {
	fetcher Fetcher

	mu      sync.Mutex
	seq     uint64
	applied uint64
	current flips.Result
	hasData bool
}

// NewRefresher wraps a fetcher.
func NewRefresher(fetcher Fetcher) *Refresher {
	return &Refresher{fetcher: fetcher}
}

// Refresh runs a full fetch and applies the result unless a later refresh
// already landed. It returns whichever snapshot is current afterwards.
func (r *Refresher) Refresh(ctx context.Context) flips.Result {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	res := r.fetcher.Fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasData && seq < r.applied {
		logging.Infof("[refresh] dropping stale fetch seq=%d (applied=%d)", seq, r.applied)
		return r.current
	}
	r.applied = seq
	r.current = res
	r.hasData = true
	return res
}

// Current returns the applied snapshot, if any refresh has completed.
func (r *Refresher) Current() (flips.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.hasData
}

// Ensure returns the current snapshot, refreshing first when none exists.
func (r *Refresher) Ensure(ctx context.Context) flips.Result {
	if res, ok := r.Current(); ok {
		return res
	}
	return r.Refresh(ctx)
}
