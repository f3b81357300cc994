package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"silverradar/internal/flips"
	"silverradar/internal/market"
	"silverradar/internal/routes"
)

// GetRoute returns the travel plan and schematic map between two cities.
func (s *Server) GetRoute(c *gin.Context) {
	plan, err := routes.BuildPlan(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plan": plan,
		"svg":  plan.RenderSVG(),
	})
}

// PostAnalysis runs the AI advisor on one flip. The body is the flip as the
// table serves it; advisor failures come back as fixed explanatory text,
// never as an HTTP error.
func (s *Server) PostAnalysis(c *gin.Context) {
	var flip market.Opportunity
	if err := c.ShouldBindJSON(&flip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flip payload: " + err.Error()})
		return
	}
	text := s.advisor.AnalyzeTrade(c.Request.Context(), flip)
	c.JSON(http.StatusOK, gin.H{"analysis": text})
}

// GetOverview returns the one-sentence AI market summary for a region's top
// flips, cached briefly so page loads do not fan out into LLM calls.
func (s *Server) GetOverview(c *gin.Context) {
	region := market.ParseRegion(c.Query("server"))
	cacheKey := "overview:" + string(region)
	if cached, ok := s.respCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"overview": cached.(string)})
		return
	}

	res := s.refresher(region).Ensure(c.Request.Context())
	list := flips.Normalize(res.Opportunities, market.TaxConfig{Premium: true})
	sort.Slice(list, func(i, j int) bool {
		return list[i].Profit > list[j].Profit
	})
	if len(list) > 10 {
		list = list[:10]
	}

	text := s.advisor.MarketOverview(c.Request.Context(), list)
	if text != "" {
		s.respCache.SetDefault(cacheKey, text)
	}
	c.JSON(http.StatusOK, gin.H{"overview": text})
}
