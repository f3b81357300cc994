package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"silverradar/internal/flips"
	"silverradar/internal/market"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// echoAdvisor records what it was asked and returns a canned line.
type echoAdvisor struct {
	lastFlip market.Opportunity
}

func (a *echoAdvisor) AnalyzeTrade(ctx context.Context, flip market.Opportunity) string {
	a.lastFlip = flip
	return "Solid margin, safe route. [RECOMMENDED]"
}

func (a *echoAdvisor) MarketOverview(ctx context.Context, flips []market.Opportunity) string {
	return "Bags are printing silver this week."
}

func testOpportunity(id, itemID, itemName, buyCity, sellCity string, quality int, buy, sell int64) market.Opportunity {
	return market.Opportunity{
		ID:        id,
		ItemID:    itemID,
		ItemName:  itemName,
		Quality:   quality,
		BuyCity:   buyCity,
		SellCity:  sellCity,
		BuyPrice:  buy,
		SellPrice: sell,
		Timestamp: time.Now().UTC(),
	}
}

// newTestServer wires a server whose west-region refresher serves a fixed
// snapshot instead of calling the upstream.
func newTestServer(t *testing.T, res flips.Result) (*Server, *gin.Engine) {
	t.Helper()
	s := New(Config{Advisor: &echoAdvisor{}})
	s.refreshers[market.RegionWest] = NewRefresher(&fakeFetcher{results: []flips.Result{res}})

	r := gin.New()
	s.SetupRoutes(r)
	return s, r
}

func liveSnapshot() flips.Result {
	return flips.Result{
		Opportunities: []market.Opportunity{
			testOpportunity("a", "T4_BAG", "Bag T4", market.CityMartlock, market.CityLymhurst, 1, 1000, 1500),
			testOpportunity("b", "T5_MAIN_SWORD", "Broadsword T5", market.CityLymhurst, market.CityCaerleon, 2, 2000, 4000),
			testOpportunity("c", "T6_PLANKS", "Planks T6", market.CityThetford, market.CityMartlock, 1, 500, 520),
		},
		Status:    market.StatusOnline,
		Region:    market.RegionWest,
		FetchedAt: time.Now().UTC(),
	}
}

func getJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	body := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func decodeFlips(t *testing.T, raw json.RawMessage) []market.Opportunity {
	t.Helper()
	var list []market.Opportunity
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func TestGetFlips(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	code, body := getJSON(t, r, "/api/flips")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `"online"`, string(body["status"]))

	list := decodeFlips(t, body["flips"])
	// The near-break-even planks flip dies to the sales tax.
	require.Len(t, list, 2)
	for i := 1; i < len(list); i++ {
		require.LessOrEqual(t, list[i].Profit, list[i-1].Profit, "flips sorted by profit")
	}
	for _, f := range list {
		require.Greater(t, f.Profit, int64(0))
	}
}

func TestGetFlipsFilters(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	_, body := getJSON(t, r, "/api/flips?city=Martlock")
	list := decodeFlips(t, body["flips"])
	require.Len(t, list, 1)
	require.Equal(t, market.CityMartlock, list[0].BuyCity)

	_, body = getJSON(t, r, "/api/flips?quality=2")
	list = decodeFlips(t, body["flips"])
	require.Len(t, list, 1)
	require.Equal(t, "T5_MAIN_SWORD", list[0].ItemID)

	_, body = getJSON(t, r, "/api/flips?q=broadsword")
	list = decodeFlips(t, body["flips"])
	require.Len(t, list, 1)
	require.Equal(t, "Broadsword T5", list[0].ItemName)

	_, body = getJSON(t, r, "/api/flips?sellCity=Thetford")
	require.Empty(t, decodeFlips(t, body["flips"]))
}

func TestGetFlipsTaxToggle(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	_, body := getJSON(t, r, "/api/flips")
	premium := decodeFlips(t, body["flips"])

	_, body = getJSON(t, r, "/api/flips?premium=false")
	normal := decodeFlips(t, body["flips"])

	require.NotEmpty(t, premium)
	require.NotEmpty(t, normal)
	require.Greater(t, premium[0].Profit, normal[0].Profit)
}

func TestPostRefresh(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"online"`)
}

func TestGetStatus(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	// Nothing applied yet.
	code, body := getJSON(t, r, "/api/status")
	require.Equal(t, http.StatusOK, code)
	require.NotContains(t, body, "west")

	getJSON(t, r, "/api/flips")

	_, body = getJSON(t, r, "/api/status")
	require.Contains(t, body, "west")
}

func TestGetRoute(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	code, body := getJSON(t, r, "/api/route?from=Martlock&to=Caerleon")
	require.Equal(t, http.StatusOK, code)

	var svg string
	require.NoError(t, json.Unmarshal(body["svg"], &svg))
	require.Contains(t, svg, "<svg")
	require.Contains(t, svg, "Caerleon")

	code, _ = getJSON(t, r, "/api/route?from=Martlock&to=Nowhere")
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = getJSON(t, r, "/api/route?from=Martlock&to=Martlock")
	require.Equal(t, http.StatusBadRequest, code)
}

func TestPostAnalysis(t *testing.T) {
	s, r := newTestServer(t, liveSnapshot())
	adv := s.advisor.(*echoAdvisor)

	flip := testOpportunity("a", "T4_BAG", "Bag T4", market.CityMartlock, market.CityLymhurst, 1, 1000, 1500)
	payload, err := json.Marshal(flip)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "[RECOMMENDED]")
	require.Equal(t, "T4_BAG", adv.lastFlip.ItemID)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOverviewCaches(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	_, body := getJSON(t, r, "/api/overview")
	var text string
	require.NoError(t, json.Unmarshal(body["overview"], &text))
	require.Equal(t, "Bags are printing silver this week.", text)

	// Second call is served from the response cache.
	_, body = getJSON(t, r, "/api/overview")
	require.NoError(t, json.Unmarshal(body["overview"], &text))
	require.Equal(t, "Bags are printing silver this week.", text)
}

func TestParseFlipsQueryDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/flips", nil)

	q := parseFlipsQuery(c)
	require.Equal(t, market.RegionWest, q.Region)
	require.True(t, q.Tax.Premium)
	require.False(t, q.Tax.ModelLogistics)
	require.False(t, q.HasEnch)

	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/flips?server=east&enchant=0&logistics=true", nil)
	q = parseFlipsQuery(c)
	require.Equal(t, market.RegionEast, q.Region)
	require.True(t, q.HasEnch)
	require.Zero(t, q.Enchant)
	require.True(t, q.Tax.ModelLogistics)
}
