package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"silverradar/internal/aodata"
	"silverradar/internal/catalog"
	"silverradar/internal/logging"
	"silverradar/internal/market"
)

const trendsCacheTTL = 2 * time.Minute

// TrendEntry is one hot item priced at Caerleon against the Black Market.
type TrendEntry struct {
	ItemID  string `json:"item_id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
	Buy     int64  `json:"buy"`
	Sell    int64  `json:"sell"`
}

// GetTrends returns the Caerleon → Black Market hot-item panel.
func (s *Server) GetTrends(c *gin.Context) {
	region := market.ParseRegion(c.Query("server"))
	cacheKey := "trends:" + string(region)
	if cached, ok := s.respCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"region": region, "items": cached})
		return
	}

	quotes, err := s.priceClient(region).Prices(c.Request.Context(), catalog.TrendItems(), aodata.PriceOptions{
		Locations: []string{market.CityCaerleon, market.CityBlackMarket},
	})
	if err != nil {
		logging.Errorf("[trends] fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "trend data unavailable"})
		return
	}

	byItem := make(map[string]*TrendEntry)
	for _, q := range quotes {
		entry, ok := byItem[q.ItemID]
		if !ok {
			entry = &TrendEntry{
				ItemID:  q.ItemID,
				Name:    catalog.DisplayName(q.ItemID),
				IconURL: catalog.IconURL(q.ItemID, 1),
			}
			byItem[q.ItemID] = entry
		}
		switch q.City {
		case market.CityCaerleon:
			entry.Buy = q.SellPriceMin
		case market.CityBlackMarket:
			entry.Sell = q.SellPriceMin
		}
	}

	// Preserve the watch-list order.
	items := make([]TrendEntry, 0, len(byItem))
	for _, id := range catalog.TrendItems() {
		if entry, ok := byItem[id]; ok {
			items = append(items, *entry)
		}
	}

	s.respCache.Set(cacheKey, items, trendsCacheTTL)
	c.JSON(http.StatusOK, gin.H{"region": region, "items": items})
}
