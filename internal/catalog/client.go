package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"cardscout/internal/config"
	"cardscout/internal/model"
	"cardscout/internal/observability"
	"cardscout/internal/searchurl"
)

var ErrBlankQuery = errors.New("catalog: blank query")

// ErrUnexpectedPayload is returned when the body is JSON but neither a list of
// cards nor an object wrapping one.
var ErrUnexpectedPayload = errors.New("catalog: unexpected payload shape")

// Client talks to the YGOPRODeck cardinfo endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	URLs    searchurl.Builder
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.CardAPIURL,
		HTTP:    &http.Client{Timeout: cfg.HTTPTimeout},
		URLs: searchurl.Builder{
			Base:         cfg.SearchBaseURL,
			InStockParam: cfg.InStockParam,
			InStockValue: cfg.InStockValue,
		},
	}
}

// Search is the lenient entry point used by the web UI: any failure is logged
// and reported as no rows, so callers cannot tell "no matches" from "API down".
func (c *Client) Search(ctx context.Context, query string, firstEdition, inStock bool) []model.CardRow {
	rows, err := c.Fetch(ctx, query, firstEdition, inStock)
	if err != nil {
		if !errors.Is(err, ErrBlankQuery) {
			observability.RemoteFetchFailures.Inc()
			log.Printf("[catalog] search %q failed: %v", query, err)
		}
		return nil
	}
	return rows
}

// Fetch runs a fuzzy name search and maps every result to a CardRow.
func (c *Client) Fetch(ctx context.Context, query string, firstEdition, inStock bool) ([]model.CardRow, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrBlankQuery
	}

	params := url.Values{}
	params.Set("fname", query)
	params.Set("num", "100")
	params.Set("tcgplayer_data", "yes")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request card api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("card api status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode card api response: %w", err)
	}
	cards, err := decodeCards(raw)
	if err != nil {
		return nil, err
	}

	rows := make([]model.CardRow, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, c.toRow(card, firstEdition, inStock))
	}
	return rows, nil
}

// decodeCards accepts {"data": [...]} or a bare [...].
func decodeCards(raw json.RawMessage) ([]apiCard, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrUnexpectedPayload
	}
	switch trimmed[0] {
	case '{':
		var wrapper apiResponse
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("decode card api object: %w", err)
		}
		data := bytes.TrimSpace(wrapper.Data)
		if len(data) == 0 || data[0] != '[' {
			return nil, ErrUnexpectedPayload
		}
		trimmed = data
	case '[':
	default:
		return nil, ErrUnexpectedPayload
	}

	var cards []apiCard
	if err := json.Unmarshal(trimmed, &cards); err != nil {
		return nil, fmt.Errorf("decode card list: %w", err)
	}
	return cards, nil
}

func (c *Client) toRow(card apiCard, firstEdition, inStock bool) model.CardRow {
	price := decimal.Zero
	if len(card.CardPrices) > 0 {
		price = parsePrice(card.CardPrices[0].TCGPlayerPrice)
	}

	setName := ""
	if len(card.CardSets) > 0 {
		setName = card.CardSets[0].SetName
	}

	cardURL := productURL(card.CardSets, firstEdition)
	if cardURL == "" {
		cardURL = c.URLs.ProductSearchURL(card.Name, firstEdition)
	}
	if inStock {
		cardURL = c.URLs.AugmentURL(cardURL, false, true)
	}

	return model.NewCardRow(card.Name, setName, price, cardURL)
}

// productURL walks the printings in order. The first resolvable link is kept
// unless firstEdition is set and a later printing's edition mentions "1st",
// which then wins and ends the scan.
func productURL(sets []apiCardSet, firstEdition bool) string {
	found := ""
	for _, s := range sets {
		u, ok := searchurl.ExtractProductURL(s.SetURL)
		if !ok {
			continue
		}
		if firstEdition && strings.Contains(strings.ToLower(s.SetEdition), "1st") {
			return u
		}
		if found == "" {
			found = u
		}
	}
	return found
}

// parsePrice never fails: anything that is not a non-negative number is zero.
func parsePrice(raw json.RawMessage) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
