package market

import "time"

// Region identifies one of the three game-server regions the data project mirrors.
type Region string

const (
	RegionWest   Region = "west"
	RegionEast   Region = "east"
	RegionEurope Region = "europe"
)

// ParseRegion maps a selector value to a Region, defaulting to west.
func ParseRegion(raw string) Region {
	switch Region(raw) {
	case RegionEast:
		return RegionEast
	case RegionEurope:
		return RegionEurope
	default:
		return RegionWest
	}
}

// Royal-continent cities plus the Black Market. Caerleon and the Black
// Market sit in the red zone, which matters for route risk and logistics.
const (
	CityCaerleon     = "Caerleon"
	CityBridgewatch  = "Bridgewatch"
	CityFortSterling = "Fort Sterling"
	CityLymhurst     = "Lymhurst"
	CityMartlock     = "Martlock"
	CityThetford     = "Thetford"
	CityBlackMarket  = "Black Market"
)

// Cities lists every tradable location in a stable order.
func Cities() []string {
	return []string{
		CityCaerleon,
		CityBridgewatch,
		CityFortSterling,
		CityLymhurst,
		CityMartlock,
		CityThetford,
		CityBlackMarket,
	}
}

// IsRiskyCity reports whether trading through the city crosses full-loot territory.
func IsRiskyCity(city string) bool {
	return city == CityCaerleon || city == CityBlackMarket
}

// Status reports whether the last refresh came from the live upstream or
// from the synthetic fallback set.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// Opportunity is one candidate buy-in-A / sell-in-B trade. Profit and
// ProfitMargin are zero until the normalizer runs.
type Opportunity struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	ItemName      string    `json:"item_name"`
	IconURL       string    `json:"icon_url"`
	Tier          string    `json:"tier"`
	Quality       int       `json:"quality"`
	Enchantment   int       `json:"enchantment"`
	BuyCity       string    `json:"buy_city"`
	SellCity      string    `json:"sell_city"`
	BuyPrice      int64     `json:"buy_price"`
	SellPrice     int64     `json:"sell_price"`
	MarketAverage int64     `json:"market_average"`
	Discount      float64   `json:"discount"`
	Profit        int64     `json:"profit"`
	ProfitMargin  float64   `json:"profit_margin"`
	LogisticsCost int64     `json:"logistics_cost,omitempty"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
	LastUpdate    time.Time `json:"last_update"`
}

// RiskLabel classifies the route for the advisory prompt.
func (o Opportunity) RiskLabel() string {
	if IsRiskyCity(o.BuyCity) || IsRiskyCity(o.SellCity) {
		return "HIGH (red zone, full loot)"
	}
	return "LOW (safe zones)"
}

// Transaction tax rates. Premium accounts pay the preferential rate.
const (
	PremiumTaxRate = 0.065
	NormalTaxRate  = 0.105
)

// TaxConfig selects the normalizer's deductions.
type TaxConfig struct {
	Premium bool `json:"premium"`
	// ModelLogistics enables the travel-cost deduction keyed by item tier
	// and route danger.
	ModelLogistics bool `json:"model_logistics"`
}

// Rate returns the applicable transaction tax rate.
func (c TaxConfig) Rate() float64 {
	if c.Premium {
		return PremiumTaxRate
	}
	return NormalTaxRate
}
