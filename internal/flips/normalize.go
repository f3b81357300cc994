package flips

import (
	"math"

	"silverradar/internal/catalog"
	"silverradar/internal/market"
)

// Logistics model: a flat per-trip base, triple on routes that touch the
// red zone, scaled by the item's tier number.
const (
	logisticsBaseSafe  = 300
	logisticsBaseRisky = 900
)

// Normalize recomputes net profit and return-on-investment for every
// candidate under the given tax configuration and drops everything that is
// not strictly profitable. The input slice is not modified.
func Normalize(opps []market.Opportunity, cfg market.TaxConfig) []market.Opportunity {
	rate := cfg.Rate()
	out := make([]market.Opportunity, 0, len(opps))

	for _, o := range opps {
		var logistics int64
		if cfg.ModelLogistics {
			logistics = logisticsCost(o)
		}

		revenue := float64(o.SellPrice) * (1 - rate)
		profit := int64(math.Floor(revenue - float64(o.BuyPrice) - float64(logistics)))
		if profit <= 0 {
			continue
		}

		// Capital risked covers both the purchase and the trip.
		invested := float64(o.BuyPrice + logistics)
		margin := float64(profit) / invested * 100

		o.Profit = profit
		o.ProfitMargin = math.Round(margin*100) / 100
		o.LogisticsCost = logistics
		out = append(out, o)
	}
	return out
}

func logisticsCost(o market.Opportunity) int64 {
	base := int64(logisticsBaseSafe)
	if market.IsRiskyCity(o.BuyCity) || market.IsRiskyCity(o.SellCity) {
		base = logisticsBaseRisky
	}
	tier := catalog.TierNumber(o.ItemID)
	if tier <= 0 {
		tier = 1
	}
	return base * int64(tier)
}
