package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"silverradar/internal/advisor"
	"silverradar/internal/cache"
	"silverradar/internal/config"
	"silverradar/internal/flips"
	"silverradar/internal/logging"
	"silverradar/internal/server"
	sqlstore "silverradar/internal/storage/sqlite"
	"silverradar/internal/ws"
)

func main() {
	godotenv.Load()
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := config.String("RADAR_ADDR", ":8080")
	opts := flips.Options{
		OutlierMultiplier: config.Float("OUTLIER_MULTIPLIER", 15),
		MaxQuoteAge:       config.Duration("MAX_QUOTE_AGE", 48*time.Hour),
	}

	adv := buildAdvisor()

	var store *sqlstore.Store
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		var err error
		store, err = sqlstore.Open(path)
		if err != nil {
			logging.Fatalf("[radar-server] open sqlite: %v", err)
		}
		defer store.Close()
		if err := store.CreateTables(ctx); err != nil {
			logging.Fatalf("[radar-server] ensure schema: %v", err)
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	srv := server.New(server.Config{
		Advisor:     adv,
		Hub:         hub,
		Store:       store,
		DeriveOpts:  opts,
		HTTPTimeout: config.Duration("UPSTREAM_TIMEOUT", 20*time.Second),
	})

	if config.String("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	srv.SetupRoutes(router)

	httpSrv := &http.Server{Addr: addr, Handler: router}
	go func() {
		logging.Infof("[radar-server] listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("[radar-server] listen: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("[radar-server] shutdown: %v", err)
	}
}

func buildAdvisor() advisor.Advisor {
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		logging.Infof("[radar-server] no LLM credential configured, AI analysis disabled")
		return advisor.Disabled{}
	}

	client, err := advisor.NewClient(advisor.ClientConfig{
		APIKey:      apiKey,
		BaseURL:     os.Getenv("LLM_BASE_URL"),
		Model:       os.Getenv("LLM_MODEL"),
		Temperature: float32(config.Float("LLM_TEMPERATURE", 0.3)),
		MaxTokens:   config.Int("LLM_MAX_TOKENS", 400),
	})
	if err != nil {
		logging.Errorf("[radar-server] llm client init failed, AI analysis disabled: %v", err)
		return advisor.Disabled{}
	}

	var adviceCache cache.AdviceCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		adviceCache, err = cache.NewRedisAdviceCache(
			redisAddr,
			os.Getenv("REDIS_PASSWORD"),
			config.Int("REDIS_DB", 0),
			config.Duration("ADVICE_CACHE_TTL", 6*time.Hour),
			"flip_advice",
		)
		if err != nil {
			logging.Errorf("[radar-server] advice cache disabled: %v", err)
		}
	}

	svc, err := advisor.NewService(advisor.Config{Client: client, Cache: adviceCache})
	if err != nil {
		logging.Errorf("[radar-server] advisor init failed, AI analysis disabled: %v", err)
		return advisor.Disabled{}
	}
	return svc
}
