package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"cardscout/internal/catalog"
	"cardscout/internal/config"
	"cardscout/internal/db"
	"cardscout/internal/demo"
	"cardscout/internal/observability"
	"cardscout/internal/repository"
	"cardscout/internal/snapshot"
)

// go run ./cmd/snapshot
// go run ./cmd/snapshot -cards="Jinzo,Barrel Dragon"
func main() {
	cardsArg := flag.String("cards", "", "comma separated card names (default: the popular cards list)")
	flag.Parse()

	cfg := config.Load()
	logFile := observability.SetupLogging(cfg.LogFile)
	defer logFile.Close()

	log.Println("starting price snapshot run...")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}
	defer pool.Close()

	names, err := cardNames(*cardsArg, cfg.DemoCardsFile)
	if err != nil {
		log.Fatalf("load card list: %v", err)
	}
	log.Printf("refreshing %d cards with %d workers", len(names), cfg.WorkerCount)

	r := &snapshot.Runner{
		Fetcher: catalog.NewClient(cfg),
		Store:   &repository.SnapshotRepository{DB: pool},
		Workers: cfg.WorkerCount,
	}
	sum := r.Run(ctx, names)

	log.Printf("snapshot run finished: %d recorded, %d failed", sum.Recorded, sum.Failed)
}

func cardNames(arg, demoFile string) ([]string, error) {
	if arg != "" {
		var names []string
		for _, n := range strings.Split(arg, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		return names, nil
	}
	cards, err := demo.Load(demoFile)
	if err != nil {
		return nil, err
	}
	return cards.Names(), nil
}
