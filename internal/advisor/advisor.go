package advisor

import (
	"context"
	"fmt"
	"strings"

	"silverradar/internal/cache"
	"silverradar/internal/hashutil"
	"silverradar/internal/logging"
	"silverradar/internal/market"
)

// Advisor turns structured trade data into a short natural-language risk
// assessment. The flips pipeline never depends on it; it is injected where
// a surface wants advisory text.
type Advisor interface {
	AnalyzeTrade(ctx context.Context, flip market.Opportunity) string
	MarketOverview(ctx context.Context, flips []market.Opportunity) string
}

// Fixed strings returned in place of analysis. A missing credential is a
// user-visible terminal state, not an error to surface.
const (
	msgNoCredential = "AI analysis is unavailable: no API key is configured for the advisory service."
	msgCallFailed   = "The AI advisor could not be reached for a technical analysis of this trade."
)

const systemPrompt = "You are a veteran Albion Online market analyst. You give short, blunt, technical trade assessments."

// Service is the live advisor backed by an LLM client, with an optional
// Redis cache so identical trades are not re-analyzed.
type Service struct {
	client *Client
	cache  cache.AdviceCache
}

// Config wires the service.
type Config struct {
	Client *Client
	Cache  cache.AdviceCache
}

// NewService builds the live advisor.
func NewService(cfg Config) (*Service, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("advisor: llm client is required")
	}
	return &Service{client: cfg.Client, cache: cfg.Cache}, nil
}

// AnalyzeTrade produces a sub-50-word assessment with a one-word verdict.
// Failures degrade to a fixed explanatory string and are never surfaced.
func (s *Service) AnalyzeTrade(ctx context.Context, flip market.Opportunity) string {
	key := analysisKey(flip)
	if s.cache != nil {
		if text, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return text
		}
	}

	prompt := strings.Join([]string{
		"Assess this flip opportunity:",
		fmt.Sprintf("- Item: %s (tier %s, quality %d)", flip.ItemName, flip.Tier, flip.Quality),
		fmt.Sprintf("- Route: %s -> %s", flip.BuyCity, flip.SellCity),
		fmt.Sprintf("- Estimated profit: %d silver", flip.Profit),
		fmt.Sprintf("- Margin (ROI): %.2f%%", flip.ProfitMargin),
		fmt.Sprintf("- Route risk: %s", flip.RiskLabel()),
		"",
		"Give a short technical analysis (50 words max).",
		"End with exactly one verdict in brackets: [RECOMMENDED], [CAUTION] or [RISKY].",
	}, "\n")

	text, err := s.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		logging.Errorf("[advisor] trade analysis failed: %v", err)
		return msgCallFailed
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text); err != nil {
			logging.Errorf("[advisor] cache write failed: %v", err)
		}
	}
	return text
}

// MarketOverview summarizes the current top flips in one sentence. An empty
// input or any failure yields an empty string; the dashboard has copy for
// that case.
func (s *Service) MarketOverview(ctx context.Context, flips []market.Opportunity) string {
	if len(flips) == 0 {
		return ""
	}
	top := flips
	if len(top) > 3 {
		top = top[:3]
	}
	names := make([]string, 0, len(top))
	for _, f := range top {
		names = append(names, f.ItemName)
	}

	prompt := fmt.Sprintf(
		"Summarize the current Albion market in one short, punchy sentence (15 words max), citing these trending items: %s.",
		strings.Join(names, ", "))

	text, err := s.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		logging.Errorf("[advisor] market overview failed: %v", err)
		return ""
	}
	return text
}

func analysisKey(flip market.Opportunity) string {
	return hashutil.HashStrings(
		flip.ID,
		fmt.Sprintf("%d", flip.Profit),
		fmt.Sprintf("%.2f", flip.ProfitMargin),
	)
}

// Disabled is the advisor used when no credential is configured.
type Disabled struct{}

func (Disabled) AnalyzeTrade(ctx context.Context, flip market.Opportunity) string {
	return msgNoCredential
}

func (Disabled) MarketOverview(ctx context.Context, flips []market.Opportunity) string {
	return ""
}
