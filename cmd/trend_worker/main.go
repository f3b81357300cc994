package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"silverradar/internal/config"
	"silverradar/internal/kafka"
	"silverradar/internal/logging"
	"silverradar/internal/models"
	sqlstore "silverradar/internal/storage/sqlite"
	"silverradar/internal/workers"
)

func main() {
	godotenv.Load()
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	brokers := kafka.Brokers()
	topic := kafka.TopicFromEnv("QUOTES_KAFKA_TOPIC", kafka.DefaultQuoteTopic)
	group := config.String("TREND_WORKER_GROUP", "trend-worker")
	workerCount := config.Int("TREND_WORKERS", 1)

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Fatalf("[trend-worker] wait for broker: %v", err)
	}
	cancel()

	store, err := sqlstore.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		logging.Fatalf("[trend-worker] open sqlite: %v", err)
	}
	defer store.Close()
	if err := store.CreateTables(ctx); err != nil {
		logging.Fatalf("[trend-worker] ensure schema: %v", err)
	}

	logging.Infof("[trend-worker] consuming %s with group %s (%d workers)", topic, group, workerCount)
	workers.Run(ctx, brokers, topic, group, workerCount, func(ctx context.Context, batch *models.QuoteBatch) error {
		logging.Debugf("[trend-worker] journaling %d quotes for %s", len(batch.Quotes), batch.Region)
		return store.UpsertQuoteBatch(ctx, *batch)
	})
}
