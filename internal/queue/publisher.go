package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"silverradar/internal/aodata"
	"silverradar/internal/market"
	"silverradar/internal/models"
)

// PublishQuotes wraps one collector pass into a QuoteBatch message keyed by
// region and capture time.
func PublishQuotes(ctx context.Context, writer *kafka.Writer, region market.Region, quotes []aodata.PriceQuote) error {
	if writer == nil || len(quotes) == 0 {
		return nil
	}

	captured := time.Now().UTC()
	batch := models.NewQuoteBatch(region, quotes, captured)
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal quote batch: %w", err)
	}

	key := fmt.Sprintf("%s-%d", region, captured.UnixNano())
	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: payload})
}
