package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"cardscout/internal/config"
)

var ErrNotFound = errors.New("geocode: no result")

const unknownState = "Unknown"

type Location struct {
	Lat   float64
	Lon   float64
	State string
}

// Client queries a Nominatim-compatible /search endpoint.
type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:   cfg.GeocoderURL,
		UserAgent: cfg.GeocoderUserAgent,
		HTTP:      &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Geocode looks up a US city. State is "Unknown" when the address has none.
func (c *Client) Geocode(ctx context.Context, city string) (Location, error) {
	params := url.Values{}
	params.Set("q", city+", USA")
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("build geocode request: %w", err)
	}
	// Nominatim's usage policy rejects requests without an identifying agent
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocode %q: %w", city, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocode %q: status %d", city, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Location{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return Location{}, ErrNotFound
	}

	hit := results[0]
	lat, err := strconv.ParseFloat(hit.Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("parse latitude %q: %w", hit.Lat, err)
	}
	lon, err := strconv.ParseFloat(hit.Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("parse longitude %q: %w", hit.Lon, err)
	}

	state := hit.Address.State
	if state == "" {
		state = unknownState
	}
	return Location{Lat: lat, Lon: lon, State: state}, nil
}
