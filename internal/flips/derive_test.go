package flips

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"silverradar/internal/aodata"
	"silverradar/internal/market"
)

func quote(itemID, city string, quality int, price int64, observed time.Time) aodata.PriceQuote {
	return aodata.PriceQuote{
		ItemID:           itemID,
		City:             city,
		Quality:          quality,
		SellPriceMin:     price,
		SellPriceMinDate: aodata.Time(observed),
	}
}

func TestDeriveCrossCityPairs(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []aodata.PriceQuote{
		quote("T4_BAG", market.CityMartlock, 1, 1000, now),
		quote("T4_BAG", market.CityLymhurst, 1, 1500, now),
	}

	opps := Derive(quotes, market.RegionWest, Options{Now: now})
	require.Len(t, opps, 2, "two cities with the same quality give both ordered pairs")

	for _, o := range opps {
		require.NotEqual(t, o.BuyCity, o.SellCity)
		require.Equal(t, 1, o.Quality)
		require.Greater(t, o.BuyPrice, int64(0))
		require.Greater(t, o.SellPrice, int64(0))
		require.Zero(t, o.Profit, "profit stays unset until the normalizer runs")
	}

	first := opps[0]
	require.Equal(t, "T4_BAG-Lymhurst-Martlock-1-west", opps[1].ID)
	require.Equal(t, "T4_BAG-Martlock-Lymhurst-1-west", first.ID)
	require.Equal(t, "Bag T4", first.ItemName)
	require.Equal(t, int64(1250), first.MarketAverage)
}

func TestDeriveSkipsQualityMismatch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []aodata.PriceQuote{
		quote("T4_BAG", market.CityMartlock, 1, 1000, now),
		quote("T4_BAG", market.CityLymhurst, 2, 1500, now),
	}

	opps := Derive(quotes, market.RegionWest, Options{Now: now})
	require.Empty(t, opps, "different qualities never pair")
}

func TestDeriveSkipsNonPositivePrices(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []aodata.PriceQuote{
		quote("T4_BAG", market.CityMartlock, 1, 0, now),
		quote("T4_BAG", market.CityLymhurst, 1, 1500, now),
		quote("T4_BAG", market.CityThetford, 1, -5, now),
	}

	opps := Derive(quotes, market.RegionWest, Options{Now: now})
	require.Empty(t, opps)
}

func TestDeriveRejectsOutlierSpread(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []aodata.PriceQuote{
		quote("T4_BAG", market.CityMartlock, 1, 100, now),
		quote("T4_BAG", market.CityLymhurst, 1, 2000, now), // 20x the origin price
	}

	opps := Derive(quotes, market.RegionWest, Options{Now: now})
	require.Len(t, opps, 1, "only the reverse direction survives the outlier guard")
	require.Equal(t, market.CityLymhurst, opps[0].BuyCity)

	// A wider multiplier admits the spread again.
	opps = Derive(quotes, market.RegionWest, Options{Now: now, OutlierMultiplier: 25})
	require.Len(t, opps, 2)
}

func TestDeriveDropsStaleQuotes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []aodata.PriceQuote{
		quote("T4_BAG", market.CityMartlock, 1, 1000, now.Add(-72*time.Hour)),
		quote("T4_BAG", market.CityLymhurst, 1, 1500, now.Add(-time.Hour)),
	}

	opps := Derive(quotes, market.RegionWest, Options{Now: now, MaxQuoteAge: 48 * time.Hour})
	require.Empty(t, opps, "a stale leg removes both directions")

	// Zero disables the cutoff entirely.
	opps = Derive(quotes, market.RegionWest, Options{Now: now})
	require.Len(t, opps, 2)
}

func TestDeriveDiscountAgainstAverage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []aodata.PriceQuote{
		quote("T5_PLANKS", market.CityMartlock, 1, 800, now),
		quote("T5_PLANKS", market.CityLymhurst, 1, 1200, now),
	}

	opps := Derive(quotes, market.RegionWest, Options{Now: now})
	require.Len(t, opps, 2)

	byBuyCity := make(map[string]market.Opportunity)
	for _, o := range opps {
		byBuyCity[o.BuyCity] = o
	}

	// Average 1000: buying at 800 is a 20% discount, at 1200 a -20% one.
	require.InDelta(t, 20.0, byBuyCity[market.CityMartlock].Discount, 1e-9)
	require.InDelta(t, -20.0, byBuyCity[market.CityLymhurst].Discount, 1e-9)
}

func TestDeriveIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []aodata.PriceQuote{
		quote("T4_BAG", market.CityMartlock, 1, 1000, now),
		quote("T4_BAG", market.CityLymhurst, 1, 1500, now),
		quote("T6_CLOTH", market.CityThetford, 2, 4000, now),
		quote("T6_CLOTH", market.CityBridgewatch, 2, 5200, now),
		quote("T5_MOUNT_OX", market.CityCaerleon, 1, 9000, now),
		quote("T5_MOUNT_OX", market.CityFortSterling, 1, 7000, now),
	}

	first := Derive(quotes, market.RegionWest, Options{Now: now})
	second := Derive(quotes, market.RegionWest, Options{Now: now})
	require.Equal(t, first, second)
}
