package flips

import (
	"context"
	"time"

	"silverradar/internal/aodata"
	"silverradar/internal/catalog"
	"silverradar/internal/logging"
	"silverradar/internal/market"
)

// Result is one full refresh: the derived candidate set plus whether it
// came from the live upstream or the synthetic fallback.
type Result struct {
	Opportunities []market.Opportunity `json:"opportunities"`
	Status        market.Status        `json:"status"`
	Region        market.Region        `json:"region"`
	FetchedAt     time.Time            `json:"fetched_at"`
}

// Fetcher runs the fetch → derive step against one regional mirror.
type Fetcher struct {
	client *aodata.Client
	region market.Region
	opts   Options
}

// NewFetcher wires a deriver to a price client.
func NewFetcher(client *aodata.Client, region market.Region, opts Options) *Fetcher {
	return &Fetcher{client: client, region: region, opts: opts}
}

// Fetch pulls the full watch-list quote set and derives candidates from it.
// Every failure mode upstream (network error, non-success status, empty or
// fully filtered result) collapses into the same degraded path: a synthetic
// set with StatusOffline. Fetch itself never fails.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	now := time.Now().UTC()

	quotes, err := f.client.Prices(ctx, catalog.TrackedItems(), aodata.PriceOptions{
		Qualities: []int{1, 2, 3, 4, 5},
	})
	if err != nil {
		logging.Errorf("[flips] price fetch failed, using fallback: %v", err)
		return f.fallback(now)
	}

	opps := Derive(quotes, f.region, f.opts)
	if len(opps) == 0 {
		logging.Infof("[flips] upstream returned no usable quotes, using fallback")
		return f.fallback(now)
	}

	return Result{
		Opportunities: opps,
		Status:        market.StatusOnline,
		Region:        f.region,
		FetchedAt:     now,
	}
}

func (f *Fetcher) fallback(now time.Time) Result {
	return Result{
		Opportunities: GenerateMock(f.region, now),
		Status:        market.StatusOffline,
		Region:        f.region,
		FetchedAt:     now,
	}
}
