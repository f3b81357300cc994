package aodata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"silverradar/internal/market"
)

// HistoryPoint is one aggregated bucket from the history endpoint.
type HistoryPoint struct {
	ItemCount int64   `json:"item_count"`
	AvgPrice  float64 `json:"avg_price"`
	Timestamp Time    `json:"timestamp"`
}

// LocationHistory groups history points for a single city.
type LocationHistory struct {
	Location string         `json:"location"`
	ItemID   string         `json:"item_id"`
	Quality  int            `json:"quality"`
	Data     []HistoryPoint `json:"data"`
}

// HistoryClient queries the slower aggregate endpoints (price history).
type HistoryClient struct {
	rest *resty.Client
}

// NewHistoryClient builds a history client for one regional mirror.
func NewHistoryClient(cfg Config) *HistoryClient {
	base := cfg.BaseURL
	if base == "" {
		base = regionBaseURLs[cfg.Region]
	}
	if base == "" {
		base = regionBaseURLs[market.RegionWest]
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	rest := resty.New()
	rest.SetBaseURL(strings.TrimRight(base, "/"))
	rest.SetTimeout(timeout)
	rest.SetRetryCount(3)
	rest.SetRetryWaitTime(1 * time.Second)
	rest.SetRetryMaxWaitTime(10 * time.Second)

	return &HistoryClient{rest: rest}
}

// HistoryOptions narrow a history query. TimeScale is the bucket width in
// hours; the dashboard uses 6.
type HistoryOptions struct {
	Locations []string
	Quality   int
	TimeScale int
}

// History fetches aggregated price history for one item, grouped by city.
func (c *HistoryClient) History(ctx context.Context, itemID string, opts HistoryOptions) ([]LocationHistory, error) {
	if itemID == "" {
		return nil, fmt.Errorf("aodata: item id is required")
	}
	timeScale := opts.TimeScale
	if timeScale <= 0 {
		timeScale = 6
	}

	req := c.rest.R().
		SetContext(ctx).
		SetQueryParam("time-scale", fmt.Sprintf("%d", timeScale))
	if len(opts.Locations) > 0 {
		req.SetQueryParam("locations", strings.Join(opts.Locations, ","))
	}
	if opts.Quality > 0 {
		req.SetQueryParam("qualities", fmt.Sprintf("%d", opts.Quality))
	}

	var out []LocationHistory
	resp, err := req.SetResult(&out).Get("/api/v2/stats/history/" + itemID)
	if err != nil {
		return nil, fmt.Errorf("aodata history: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("aodata history: %s: %s", resp.Status(), strings.TrimSpace(string(resp.Body())))
	}
	return out, nil
}
