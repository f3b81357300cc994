package aodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"silverradar/internal/market"
)

// Regional mirrors of the Albion Online Data Project.
var regionBaseURLs = map[market.Region]string{
	market.RegionWest:   "https://west.albion-online-data.com",
	market.RegionEast:   "https://east.albion-online-data.com",
	market.RegionEurope: "https://europe.albion-online-data.com",
}

// PriceQuote is one per-city, per-quality listing row from the prices
// endpoint. A non-positive SellPriceMin means absent data, not a free item.
type PriceQuote struct {
	ItemID           string `json:"item_id"`
	City             string `json:"city"`
	Quality          int    `json:"quality"`
	SellPriceMin     int64  `json:"sell_price_min"`
	SellPriceMinDate Time   `json:"sell_price_min_date"`
	BuyPriceMax      int64  `json:"buy_price_max"`
	BuyPriceMaxDate  Time   `json:"buy_price_max_date"`
}

// ObservedAt returns when the minimum sale listing was last seen.
func (q PriceQuote) ObservedAt() time.Time {
	return time.Time(q.SellPriceMinDate)
}

// Client fetches price listings from one regional mirror.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config controls optional overrides for the client.
type Config struct {
	// BaseURL overrides the regional mirror, mainly for tests.
	BaseURL string
	Region  market.Region
	Timeout time.Duration
}

// NewClient builds a price client with sane defaults.
func NewClient(cfg Config) *Client {
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
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PriceOptions narrow a prices query.
type PriceOptions struct {
	Qualities []int
	Locations []string
}

// Prices fetches current listings for the given item identifiers. The API
// takes a comma-joined identifier list in the path and optional quality and
// location filters.
func (c *Client) Prices(ctx context.Context, itemIDs []string, opts PriceOptions) ([]PriceQuote, error) {
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("aodata: no item ids given")
	}

	u, err := url.Parse(fmt.Sprintf("%s/api/v2/stats/prices/%s", c.baseURL, strings.Join(itemIDs, ",")))
	if err != nil {
		return nil, fmt.Errorf("aodata: build url: %w", err)
	}
	q := u.Query()
	if len(opts.Qualities) > 0 {
		q.Set("qualities", joinInts(opts.Qualities))
	}
	if len(opts.Locations) > 0 {
		q.Set("locations", strings.Join(opts.Locations, ","))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	var quotes []PriceQuote
	if err := c.do(req, &quotes); err != nil {
		return nil, fmt.Errorf("aodata prices: %w", err)
	}
	return quotes, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	var attempt int
	for {
		attempt++
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if shouldRetry(attempt, 0) {
				sleep(attempt)
				continue
			}
			return err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			defer resp.Body.Close()
			return json.NewDecoder(resp.Body).Decode(dst)
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()

		if shouldRetry(attempt, resp.StatusCode) {
			sleep(attempt)
			continue
		}
		return fmt.Errorf("data API %s: %s", resp.Status, string(body))
	}
}

func shouldRetry(attempt int, status int) bool {
	if attempt >= 4 {
		return false
	}
	if status == 0 {
		return true
	}
	if status == http.StatusTooManyRequests || status >= 500 {
		return true
	}
	return false
}

func sleep(attempt int) {
	backoff := time.Duration(1<<uint(attempt-1)) * time.Second
	if backoff > 15*time.Second {
		backoff = 15 * time.Second
	}
	time.Sleep(backoff)
}

func joinInts(vals []int) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

// Time tolerates the API's fractional-second-less timestamps alongside
// RFC3339 values.
type Time time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*t = Time(time.Time{})
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = Time(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("aodata: unparseable timestamp %q", raw)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339))
}
