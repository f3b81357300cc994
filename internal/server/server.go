package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"silverradar/internal/advisor"
	"silverradar/internal/aodata"
	"silverradar/internal/flips"
	"silverradar/internal/market"
	sqlstore "silverradar/internal/storage/sqlite"
	"silverradar/internal/ws"
)

// Config wires the API server.
type Config struct {
	Advisor     advisor.Advisor
	Hub         *ws.Hub
	Store       *sqlstore.Store // optional history fallback
	DeriveOpts  flips.Options
	HTTPTimeout time.Duration
}

// Server exposes the dashboard API. One refresher and one pair of upstream
// clients exist per region, created lazily on first use.
type Server struct {
	advisor advisor.Advisor
	hub     *ws.Hub
	store   *sqlstore.Store
	opts    flips.Options
	timeout time.Duration

	mu         sync.Mutex
	refreshers map[market.Region]*Refresher
	prices     map[market.Region]*aodata.Client
	histories  map[market.Region]*aodata.HistoryClient

	// Short-TTL in-process cache for the slow aggregate surfaces
	// (overview, trends, history).
	respCache *gocache.Cache
}

// New builds a server.
func New(cfg Config) *Server {
	adv := cfg.Advisor
	if adv == nil {
		adv = advisor.Disabled{}
	}
	return &Server{
		advisor:    adv,
		hub:        cfg.Hub,
		store:      cfg.Store,
		opts:       cfg.DeriveOpts,
		timeout:    cfg.HTTPTimeout,
		refreshers: make(map[market.Region]*Refresher),
		prices:     make(map[market.Region]*aodata.Client),
		histories:  make(map[market.Region]*aodata.HistoryClient),
		respCache:  gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// SetupRoutes registers every API route on the router.
func (s *Server) SetupRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if s.hub != nil {
		r.GET("/ws", func(c *gin.Context) {
			s.hub.Serve(c.Writer, c.Request)
		})
	}

	api := r.Group("/api")
	{
		api.GET("/flips", s.GetFlips)
		api.GET("/flips/export", s.ExportFlips)
		api.POST("/refresh", s.PostRefresh)
		api.GET("/status", s.GetStatus)
		api.GET("/route", s.GetRoute)
		api.POST("/analysis", s.PostAnalysis)
		api.GET("/overview", s.GetOverview)
		api.GET("/trends", s.GetTrends)
		api.GET("/history/:itemID", s.GetHistory)
	}
}

func (s *Server) refresher(region market.Region) *Refresher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.refreshers[region]; ok {
		return r
	}
	client := s.priceClientLocked(region)
	r := NewRefresher(flips.NewFetcher(client, region, s.opts))
	s.refreshers[region] = r
	return r
}

func (s *Server) priceClient(region market.Region) *aodata.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priceClientLocked(region)
}

func (s *Server) priceClientLocked(region market.Region) *aodata.Client {
	if c, ok := s.prices[region]; ok {
		return c
	}
	c := aodata.NewClient(aodata.Config{Region: region, Timeout: s.timeout})
	s.prices[region] = c
	return c
}

func (s *Server) historyClient(region market.Region) *aodata.HistoryClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.histories[region]; ok {
		return c
	}
	c := aodata.NewHistoryClient(aodata.Config{Region: region, Timeout: s.timeout})
	s.histories[region] = c
	return c
}

// flipsQuery is every filter the table surface supports.
type flipsQuery struct {
	Region   market.Region
	BuyCity  string
	SellCity string
	Quality  int
	Enchant  int
	HasEnch  bool
	Search   string
	Tax      market.TaxConfig
}

func parseFlipsQuery(c *gin.Context) flipsQuery {
	q := flipsQuery{
		Region:   market.ParseRegion(c.Query("server")),
		BuyCity:  c.Query("city"),
		SellCity: c.Query("sellCity"),
		Search:   strings.ToLower(strings.TrimSpace(c.Query("q"))),
	}
	if v, err := strconv.Atoi(c.Query("quality")); err == nil {
		q.Quality = v
	}
	if raw := c.Query("enchant"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q.Enchant = v
			q.HasEnch = true
		}
	}
	q.Tax = market.TaxConfig{
		Premium:        parseBoolDefault(c.Query("premium"), true),
		ModelLogistics: parseBoolDefault(c.Query("logistics"), false),
	}
	return q
}

func parseBoolDefault(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// GetFlips returns the normalized, filtered opportunity table.
func (s *Server) GetFlips(c *gin.Context) {
	q := parseFlipsQuery(c)
	res := s.refresher(q.Region).Ensure(c.Request.Context())

	list := flips.Normalize(res.Opportunities, q.Tax)
	list = filterFlips(list, q)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Profit > list[j].Profit
	})

	c.JSON(http.StatusOK, gin.H{
		"status":     res.Status,
		"region":     res.Region,
		"fetched_at": res.FetchedAt,
		"count":      len(list),
		"flips":      list,
	})
}

func filterFlips(list []market.Opportunity, q flipsQuery) []market.Opportunity {
	out := list[:0:0]
	for _, f := range list {
		if q.BuyCity != "" && f.BuyCity != q.BuyCity {
			continue
		}
		if q.SellCity != "" && f.SellCity != q.SellCity {
			continue
		}
		if q.Quality > 0 && f.Quality != q.Quality {
			continue
		}
		if q.HasEnch && f.Enchantment != q.Enchant {
			continue
		}
		if q.Search != "" &&
			!strings.Contains(strings.ToLower(f.ItemName), q.Search) &&
			!strings.Contains(strings.ToLower(f.ItemID), q.Search) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// PostRefresh forces a fresh fetch and notifies websocket clients.
func (s *Server) PostRefresh(c *gin.Context) {
	region := market.ParseRegion(c.Query("server"))
	res := s.refresher(region).Refresh(c.Request.Context())

	if s.hub != nil {
		note, _ := json.Marshal(gin.H{
			"type":       "refresh",
			"region":     res.Region,
			"status":     res.Status,
			"count":      len(res.Opportunities),
			"fetched_at": res.FetchedAt,
		})
		s.hub.Broadcast(note)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     res.Status,
		"region":     res.Region,
		"fetched_at": res.FetchedAt,
		"count":      len(res.Opportunities),
	})
}

// GetStatus reports the applied snapshot per region.
func (s *Server) GetStatus(c *gin.Context) {
	s.mu.Lock()
	regions := make([]*Refresher, 0, len(s.refreshers))
	keys := make([]market.Region, 0, len(s.refreshers))
	for region, r := range s.refreshers {
		keys = append(keys, region)
		regions = append(regions, r)
	}
	s.mu.Unlock()

	out := gin.H{}
	for i, r := range regions {
		if res, ok := r.Current(); ok {
			out[string(keys[i])] = gin.H{
				"status":     res.Status,
				"fetched_at": res.FetchedAt,
				"count":      len(res.Opportunities),
			}
		}
	}
	c.JSON(http.StatusOK, out)
}
