package flips

import (
	"fmt"
	"math"
	"sort"
	"time"

	"silverradar/internal/aodata"
	"silverradar/internal/catalog"
	"silverradar/internal/market"
)

// Options are the tunable thresholds of the deriver. Both vary between
// deployments, so neither is a hard-coded contract.
type Options struct {
	// OutlierMultiplier rejects pairs where the destination price exceeds
	// the origin price by more than this factor. Such spreads are almost
	// always corrupted or manipulated listings rather than real trades.
	OutlierMultiplier float64
	// MaxQuoteAge drops quotes whose last observation is older than this.
	// Zero disables the staleness cutoff.
	MaxQuoteAge time.Duration
	// Now overrides the staleness reference clock, mainly for tests.
	Now time.Time
}

const defaultOutlierMultiplier = 15

func (o Options) withDefaults() Options {
	if o.OutlierMultiplier <= 0 {
		o.OutlierMultiplier = defaultOutlierMultiplier
	}
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	return o
}

// Derive turns the complete quote set for a region into the maximal set of
// valid candidate trades. For every (item, quality) pair, each ordered
// cross-city pair of positive-price quotes becomes one Opportunity,
// annotated with the cross-city market average and the discount of the buy
// price against that average. Profit fields stay zero until Normalize runs.
func Derive(quotes []aodata.PriceQuote, region market.Region, opts Options) []market.Opportunity {
	opts = opts.withDefaults()

	grouped := make(map[string][]aodata.PriceQuote)
	for _, q := range quotes {
		if q.SellPriceMin <= 0 {
			continue
		}
		if stale(q, opts) {
			continue
		}
		grouped[q.ItemID] = append(grouped[q.ItemID], q)
	}

	// Sorted item order keeps repeated runs over the same quote set
	// byte-for-byte identical.
	itemIDs := make([]string, 0, len(grouped))
	for id := range grouped {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	now := opts.Now
	var out []market.Opportunity
	for _, itemID := range itemIDs {
		entries := grouped[itemID]
		enchant := catalog.Enchantment(itemID)

		for _, buy := range entries {
			avg := qualityAverage(entries, buy.Quality)
			discount := 0.0
			if avg > 0 {
				discount = (avg - float64(buy.SellPriceMin)) / avg * 100
			}

			for _, sell := range entries {
				if sell.City == buy.City {
					continue
				}
				if sell.Quality != buy.Quality {
					continue
				}
				if float64(sell.SellPriceMin) > float64(buy.SellPriceMin)*opts.OutlierMultiplier {
					continue
				}

				out = append(out, market.Opportunity{
					ID:            opportunityID(itemID, buy.City, sell.City, buy.Quality, region),
					ItemID:        itemID,
					ItemName:      catalog.DisplayName(itemID),
					IconURL:       catalog.IconURL(itemID, buy.Quality),
					Tier:          catalog.TierLabel(itemID),
					Quality:       buy.Quality,
					Enchantment:   enchant,
					BuyCity:       buy.City,
					SellCity:      sell.City,
					BuyPrice:      buy.SellPriceMin,
					SellPrice:     sell.SellPriceMin,
					MarketAverage: int64(math.Floor(avg)),
					Discount:      discount,
					Volume:        estimatedVolume,
					Timestamp:     now,
					LastUpdate:    sell.ObservedAt(),
				})
			}
		}
	}
	return out
}

// The upstream prices endpoint carries no traded-volume figure; the table
// shows a nominal constant until the history journal can answer better.
const estimatedVolume = 100

func stale(q aodata.PriceQuote, opts Options) bool {
	if opts.MaxQuoteAge <= 0 {
		return false
	}
	obs := q.ObservedAt()
	if obs.IsZero() {
		return false
	}
	return opts.Now.Sub(obs) > opts.MaxQuoteAge
}

func qualityAverage(entries []aodata.PriceQuote, quality int) float64 {
	var sum int64
	var n int
	for _, e := range entries {
		if e.Quality == quality && e.SellPriceMin > 0 {
			sum += e.SellPriceMin
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// opportunityID is stable across refreshes for the same pair, which keeps
// list keying and de-duplication consistent on the client side.
func opportunityID(itemID, buyCity, sellCity string, quality int, region market.Region) string {
	return fmt.Sprintf("%s-%s-%s-%d-%s", itemID, buyCity, sellCity, quality, region)
}
