package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"silverradar/internal/aodata"
	"silverradar/internal/config"
	"silverradar/internal/flips"
	"silverradar/internal/logging"
	"silverradar/internal/market"
)

// One-shot scan: fetch, derive, normalize, print the best flips.
func main() {
	godotenv.Load()
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	region := market.ParseRegion(config.String("RADAR_REGION", "west"))
	limit := config.Int("SCAN_LIMIT", 20)
	taxCfg := market.TaxConfig{
		Premium:        config.Bool("SCAN_PREMIUM", true),
		ModelLogistics: config.Bool("SCAN_LOGISTICS", false),
	}
	opts := flips.Options{
		OutlierMultiplier: config.Float("OUTLIER_MULTIPLIER", 15),
		MaxQuoteAge:       config.Duration("MAX_QUOTE_AGE", 48*time.Hour),
	}

	client := aodata.NewClient(aodata.Config{Region: region})
	fetcher := flips.NewFetcher(client, region, opts)

	res := fetcher.Fetch(ctx)
	list := flips.Normalize(res.Opportunities, taxCfg)
	sort.Slice(list, func(i, j int) bool { return list[i].Profit > list[j].Profit })

	logging.Infof("[flip-scan] region=%s status=%s candidates=%d profitable=%d",
		res.Region, res.Status, len(res.Opportunities), len(list))

	if len(list) > limit {
		list = list[:limit]
	}
	for _, f := range list {
		fmt.Printf("[flip] %-28s q%d %-13s -> %-13s buy=%-8d sell=%-8d profit=%-7d margin=%.2f%%\n",
			f.ItemName, f.Quality, f.BuyCity, f.SellCity, f.BuyPrice, f.SellPrice, f.Profit, f.ProfitMargin)
	}
}
