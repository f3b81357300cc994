package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"silverradar/internal/aodata"
	"silverradar/internal/logging"
	"silverradar/internal/market"
)

// How many trailing history points the detail chart shows (~72h at the
// 6-hour bucket width).
const historyPoints = 12

// HistoryPoint is one chart sample, newest first.
type HistoryPoint struct {
	AvgPrice  float64 `json:"avg_price"`
	ItemCount int64   `json:"item_count"`
	Timestamp string  `json:"timestamp"`
}

// GetHistory returns recent price history for one item in the destination
// city. It prefers the upstream aggregate endpoint; when that fails and a
// journal store is attached, the locally collected observations answer
// instead.
func (s *Server) GetHistory(c *gin.Context) {
	itemID := c.Param("itemID")
	region := market.ParseRegion(c.Query("server"))
	sellCity := c.DefaultQuery("to", market.CityCaerleon)
	buyCity := c.Query("from")
	quality, _ := strconv.Atoi(c.DefaultQuery("quality", "1"))

	cacheKey := "history:" + string(region) + ":" + itemID + ":" + sellCity + ":" + strconv.Itoa(quality)
	if cached, ok := s.respCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"item_id": itemID, "city": sellCity, "points": cached})
		return
	}

	locations := []string{sellCity}
	if buyCity != "" {
		locations = append(locations, buyCity)
	}

	histories, err := s.historyClient(region).History(c.Request.Context(), itemID, aodata.HistoryOptions{
		Locations: locations,
		Quality:   quality,
		TimeScale: 6,
	})
	if err == nil {
		if points := sellCityPoints(histories, sellCity); len(points) > 0 {
			s.respCache.SetDefault(cacheKey, points)
			c.JSON(http.StatusOK, gin.H{"item_id": itemID, "city": sellCity, "points": points})
			return
		}
	} else {
		logging.Errorf("[history] upstream fetch failed: %v", err)
	}

	points := s.journalPoints(c, region, itemID, sellCity, quality)
	c.JSON(http.StatusOK, gin.H{"item_id": itemID, "city": sellCity, "points": points, "source": "journal"})
}

func sellCityPoints(histories []aodata.LocationHistory, city string) []HistoryPoint {
	for _, h := range histories {
		if h.Location != city || len(h.Data) == 0 {
			continue
		}
		data := h.Data
		if len(data) > historyPoints {
			data = data[len(data)-historyPoints:]
		}
		// Newest first for the chart.
		out := make([]HistoryPoint, 0, len(data))
		for i := len(data) - 1; i >= 0; i-- {
			p := data[i]
			out = append(out, HistoryPoint{
				AvgPrice:  p.AvgPrice,
				ItemCount: p.ItemCount,
				Timestamp: time.Time(p.Timestamp).UTC().Format(time.RFC3339),
			})
		}
		return out
	}
	return nil
}

func (s *Server) journalPoints(c *gin.Context, region market.Region, itemID, city string, quality int) []HistoryPoint {
	if s.store == nil {
		return nil
	}
	rows, err := s.store.RecentQuotes(c.Request.Context(), region, itemID, city, quality, historyPoints)
	if err != nil {
		logging.Errorf("[history] journal query failed: %v", err)
		return nil
	}
	out := make([]HistoryPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, HistoryPoint{
			AvgPrice:  float64(r.Price),
			ItemCount: 1,
			Timestamp: r.ObservedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
