package collectors

import (
	"context"
	"time"

	"silverradar/internal/aodata"
	"silverradar/internal/catalog"
	"silverradar/internal/logging"
	"silverradar/internal/market"
)

// Collector is implemented by sources that fetch a full quote set per pass.
type Collector interface {
	Name() string
	Fetch(ctx context.Context) ([]aodata.PriceQuote, error)
}

// RunLoop fetches from a collector on a fixed interval and hands each
// non-empty result to handleFn. The data project aggregates slowly, so
// tight polling only burns rate limit.
func RunLoop(ctx context.Context, collector Collector, interval time.Duration, handleFn func(context.Context, []aodata.PriceQuote) error) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		quotes, err := collector.Fetch(ctx)
		if err != nil {
			logging.Errorf("[%s] fetch failed: %v", collector.Name(), err)
		} else if handleFn != nil && len(quotes) > 0 {
			if err := handleFn(ctx, quotes); err != nil {
				logging.Errorf("[%s] handler error: %v", collector.Name(), err)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// QuoteCollector pulls the tracked watch list from one regional mirror.
type QuoteCollector struct {
	client *aodata.Client
	region market.Region
}

// NewQuoteCollector builds a collector for a region.
func NewQuoteCollector(client *aodata.Client, region market.Region) *QuoteCollector {
	return &QuoteCollector{client: client, region: region}
}

func (c *QuoteCollector) Name() string {
	return "quotes-" + string(c.region)
}

func (c *QuoteCollector) Fetch(ctx context.Context) ([]aodata.PriceQuote, error) {
	return c.client.Prices(ctx, catalog.TrackedItems(), aodata.PriceOptions{
		Qualities: []int{1, 2, 3, 4, 5},
	})
}
