// Package statemap draws a store's location and its US state on a
// self-contained Leaflet page.
package statemap

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"cardscout/internal/config"
	"cardscout/internal/geocode"
	"cardscout/internal/model"
	"cardscout/internal/observability"
	"cardscout/internal/stores"
)

type Options struct {
	DataFile    string
	StoreColumn string
	CityColumn  string
	StatesURL   string
	OutputPath  string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DataFile:    cfg.MapDataFile,
		StoreColumn: cfg.MapStoreColumn,
		CityColumn:  cfg.MapCityColumn,
		StatesURL:   cfg.StatesGeoJSONURL,
		OutputPath:  cfg.MapOutputPath,
	}
}

type Geocoder interface {
	Geocode(ctx context.Context, city string) (geocode.Location, error)
}

type Generator struct {
	Options  Options
	Geocoder Geocoder
	HTTP     *http.Client
}

// Run resolves the target city, geocodes it and writes the page. Only a
// geocoding failure is returned as an error; a missing sheet or boundary
// download degrades the page instead.
func (g *Generator) Run(ctx context.Context, store, city string) error {
	log.Printf("Store: %s", store)
	log.Printf("City: %s", city)

	table := stores.LoadTable(g.Options.DataFile, g.Options.StoreColumn)
	row, found := stores.Lookup(table, store)

	target, source := stores.ResolveTarget(store, city, row, found, g.Options.CityColumn)
	log.Printf("Using %s for map: %s", source, target)

	sheet := filepath.Base(g.Options.DataFile)
	if found {
		log.Printf("Loaded metrics for store '%s' from %s", store, sheet)
	} else {
		log.Printf("Store '%s' not found in %s", store, sheet)
	}

	loc, err := g.Geocoder.Geocode(ctx, target)
	if err != nil {
		log.Printf("Geocoding error: %v", err)
		return fmt.Errorf("could not geocode location %s: %w", target, err)
	}
	log.Printf("Map location: %s, %s", target, loc.State)

	var states *geojson.FeatureCollection
	all, err := FetchStates(ctx, g.HTTP, g.Options.StatesURL)
	if err != nil {
		log.Printf("Could not fetch state boundaries: %v", err)
	} else {
		states = SelectState(all, loc.State)
	}

	page := Page{
		Lat:    loc.Lat,
		Lon:    loc.Lon,
		State:  loc.State,
		City:   target,
		Store:  store,
		Popup:  PopupHTML(popupRow(row, found), store, target, loc.State),
		States: states,
	}

	f, err := os.Create(g.Options.OutputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", g.Options.OutputPath, err)
	}
	if err := Render(f, page); err != nil {
		f.Close()
		return fmt.Errorf("render map: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	observability.MapsGenerated.Inc()
	log.Printf("Map saved to %s. Open it in a browser to view.", g.Options.OutputPath)
	return nil
}

func popupRow(row model.StoreRow, found bool) model.StoreRow {
	if !found {
		return model.StoreRow{}
	}
	return row
}
