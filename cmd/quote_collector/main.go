package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"silverradar/internal/aodata"
	"silverradar/internal/collectors"
	"silverradar/internal/config"
	"silverradar/internal/kafka"
	"silverradar/internal/logging"
	"silverradar/internal/market"
	"silverradar/internal/queue"
)

func main() {
	godotenv.Load()
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	region := market.ParseRegion(config.String("RADAR_REGION", "west"))
	interval := config.Duration("COLLECT_INTERVAL", 5*time.Minute)

	brokers := kafka.Brokers()
	topic := kafka.TopicFromEnv("QUOTES_KAFKA_TOPIC", kafka.DefaultQuoteTopic)

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Fatalf("[quote-collector] wait for broker: %v", err)
	}
	cancel()

	ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
	if err := kafka.EnsureTopic(ensureCtx, brokers, topic); err != nil {
		logging.Errorf("[quote-collector] ensure topic warning: %v", err)
	}
	cancelEnsure()

	writer := kafka.NewWriter(brokers, topic)
	defer writer.Close()

	client := aodata.NewClient(aodata.Config{Region: region})
	collector := collectors.NewQuoteCollector(client, region)

	logging.Infof("[quote-collector] polling %s every %s, publishing to %s", region, interval, topic)
	collectors.RunLoop(ctx, collector, interval, func(ctx context.Context, quotes []aodata.PriceQuote) error {
		logging.Infof("[quote-collector] fetched %d quotes", len(quotes))
		return queue.PublishQuotes(ctx, writer, region, quotes)
	})
}
