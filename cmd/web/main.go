package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"cardscout/internal/cache"
	"cardscout/internal/catalog"
	"cardscout/internal/config"
	"cardscout/internal/db"
	"cardscout/internal/demo"
	"cardscout/internal/observability"
	"cardscout/internal/repository"
	"cardscout/internal/search"
	"cardscout/internal/web"
)

func main() {
	cfg := config.Load()
	logFile := observability.SetupLogging(cfg.LogFile)
	defer logFile.Close()

	cards, err := demo.Load(cfg.DemoCardsFile)
	if err != nil {
		log.Fatalf("load demo cards: %v", err)
	}

	client := catalog.NewClient(cfg)
	svc := &search.Service{
		Remote: client,
		Demo:   cards,
		URLs:   client.URLs,
	}
	deps := web.Deps{Search: svc, Demo: cards}

	// Redis and Postgres are optional; without them the UI still works off
	// the live API and the demo list.
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		svc.Cache = &cache.ResultCache{Client: redisClient, TTL: cfg.CacheTTL}
	}

	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres (pgxpool): %v", err)
		}
		defer pool.Close()
		deps.History = &repository.SnapshotRepository{DB: pool}

		sqlDB, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres (database/sql): %v", err)
		}
		defer sqlDB.Close()
		svc.Log = &repository.SearchLogRepository{DB: sqlDB}
	}

	observability.Start(cfg.MetricsPort)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("card search listening on %s (metrics :%s)", cfg.HTTPAddr, cfg.MetricsPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}
