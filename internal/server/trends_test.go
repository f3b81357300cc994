package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"silverradar/internal/aodata"
	"silverradar/internal/market"
)

func TestGetTrends(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Caerleon,Black Market", r.URL.Query().Get("locations"))
		fmt.Fprint(w, `[
			{"item_id":"T4_BAG@1","city":"Caerleon","quality":1,"sell_price_min":2000,"sell_price_min_date":"2026-03-01T12:00:00"},
			{"item_id":"T4_BAG@1","city":"Black Market","quality":1,"sell_price_min":3500,"sell_price_min_date":"2026-03-01T12:00:00"},
			{"item_id":"T5_BAG@1","city":"Caerleon","quality":1,"sell_price_min":4200,"sell_price_min_date":"2026-03-01T12:00:00"}
		]`)
	}))
	defer upstream.Close()

	s, r := newTestServer(t, liveSnapshot())
	s.prices[market.RegionWest] = aodata.NewClient(aodata.Config{BaseURL: upstream.URL})

	code, body := getJSON(t, r, "/api/trends")
	require.Equal(t, http.StatusOK, code)

	var items []TrendEntry
	require.NoError(t, json.Unmarshal(body["items"], &items))
	require.Len(t, items, 2)

	// Watch-list order, Caerleon price as buy, Black Market as sell.
	require.Equal(t, "T4_BAG@1", items[0].ItemID)
	require.Equal(t, int64(2000), items[0].Buy)
	require.Equal(t, int64(3500), items[0].Sell)
	require.Equal(t, "Bag T4", items[0].Name)

	require.Equal(t, "T5_BAG@1", items[1].ItemID)
	require.Equal(t, int64(4200), items[1].Buy)
	require.Zero(t, items[1].Sell, "no Black Market listing yet")
}

func TestGetTrendsUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer upstream.Close()

	s, r := newTestServer(t, liveSnapshot())
	s.prices[market.RegionWest] = aodata.NewClient(aodata.Config{BaseURL: upstream.URL})

	code, _ := getJSON(t, r, "/api/trends")
	require.Equal(t, http.StatusBadGateway, code)
}
