package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"cardscout/internal/config"
	"cardscout/internal/geocode"
	"cardscout/internal/observability"
	"cardscout/internal/statemap"
)

// go run ./cmd/statemap "Miami Beach" "Miami"
// go run ./cmd/statemap "Miami Beach" ""    (city taken from the data file)
func main() {
	cfg := config.Load()
	logFile := observability.SetupLogging(cfg.LogFile)

	store := cfg.MapDefaultStore
	city := cfg.MapDefaultCity
	if len(os.Args) > 1 {
		store = os.Args[1]
	}
	if len(os.Args) > 2 {
		city = os.Args[2]
	}

	g := &statemap.Generator{
		Options:  statemap.OptionsFromConfig(cfg),
		Geocoder: geocode.NewClient(cfg),
		HTTP:     &http.Client{Timeout: cfg.HTTPTimeout},
	}

	if err := g.Run(context.Background(), store, city); err != nil {
		log.Print(err)
		logFile.Close()
		os.Exit(1)
	}
	logFile.Close()
}
