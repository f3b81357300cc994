package models

import (
	"time"

	"silverradar/internal/aodata"
	"silverradar/internal/market"
)

// QuoteBatch is the payload placed on the quote topic: one collector pass
// over the watch list for a single region.
type QuoteBatch struct {
	Region     market.Region       `json:"region"`
	Quotes     []aodata.PriceQuote `json:"quotes"`
	CapturedAt time.Time           `json:"captured_at"`
}

// NewQuoteBatch stamps a fetched quote set.
func NewQuoteBatch(region market.Region, quotes []aodata.PriceQuote, capturedAt time.Time) QuoteBatch {
	return QuoteBatch{
		Region:     region,
		Quotes:     quotes,
		CapturedAt: capturedAt,
	}
}
