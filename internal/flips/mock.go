package flips

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"silverradar/internal/catalog"
	"silverradar/internal/market"
)

const mockSetSize = 20

// GenerateMock produces a synthetic opportunity set from the fixed catalog
// so the dashboard stays usable while the upstream source is down. Profit
// is precomputed at the premium rate; the normalizer recomputes it anyway.
func GenerateMock(region market.Region, now time.Time) []market.Opportunity {
	rng := rand.New(rand.NewSource(now.UnixNano()))
	cities := market.Cities()
	items := catalog.TrackedItems()

	out := make([]market.Opportunity, 0, mockSetSize)
	for i := 0; i < mockSetSize; i++ {
		itemID := items[rng.Intn(len(items))]
		buyCity := cities[rng.Intn(len(cities))]
		sellCity := cities[rng.Intn(len(cities))]
		for sellCity == buyCity {
			sellCity = cities[rng.Intn(len(cities))]
		}
		quality := rng.Intn(5) + 1

		buyPrice := int64(rng.Intn(50000) + 1000)
		spread := rng.Float64()*0.4 + 0.1
		sellPrice := int64(math.Floor(float64(buyPrice) * (1 + spread)))
		profit := int64(math.Floor(float64(sellPrice)*(1-market.PremiumTaxRate) - float64(buyPrice)))

		out = append(out, market.Opportunity{
			ID:            opportunityID(itemID, buyCity, sellCity, quality, region),
			ItemID:        itemID,
			ItemName:      catalog.DisplayName(itemID),
			IconURL:       catalog.IconURL(itemID, quality),
			Tier:          catalog.TierLabel(itemID),
			Quality:       quality,
			Enchantment:   catalog.Enchantment(itemID),
			BuyCity:       buyCity,
			SellCity:      sellCity,
			BuyPrice:      buyPrice,
			SellPrice:     sellPrice,
			MarketAverage: int64(math.Floor(float64(buyPrice) * 1.2)),
			Discount:      float64(rng.Intn(25)),
			Profit:        profit,
			ProfitMargin:  math.Round(float64(profit)/float64(buyPrice)*10000) / 100,
			Volume:        estimatedVolume,
			Timestamp:     now,
			LastUpdate:    now,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Profit > out[j].Profit
	})
	return out
}
