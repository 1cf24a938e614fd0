package model

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	lowFactor  = decimal.RequireFromString("0.8")
	highFactor = decimal.RequireFromString("1.3")
)

// CardRow is one line of the results table. URL is always absolute and points
// at a product page or a search page, never at a partner redirect.
type CardRow struct {
	Name        string          `json:"name" yaml:"name"`
	Set         string          `json:"set" yaml:"set"`
	MarketPrice decimal.Decimal `json:"market_price" yaml:"market_price"`
	Low         decimal.Decimal `json:"low" yaml:"low"`
	High        decimal.Decimal `json:"high" yaml:"high"`
	URL         string          `json:"url" yaml:"url"`
}

// NewCardRow derives Low and High from the market price when the source does
// not report them.
func NewCardRow(name, set string, marketPrice decimal.Decimal, rawURL string) CardRow {
	return CardRow{
		Name:        name,
		Set:         set,
		MarketPrice: marketPrice,
		Low:         marketPrice.Mul(lowFactor),
		High:        marketPrice.Mul(highFactor),
		URL:         rawURL,
	}
}

type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortName      SortKey = "name"
)

type SearchParams struct {
	Query        string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Sort         SortKey
	FirstEdition bool
	InStock      bool
}

// ParseSearchParams reads the /search query string. Price bounds that do not
// parse are dropped; unknown sort keys are kept and later ignored by the sorter.
func ParseSearchParams(v url.Values) SearchParams {
	p := SearchParams{
		Query:        strings.TrimSpace(v.Get("q")),
		MinPrice:     parsePrice(v.Get("min_price")),
		MaxPrice:     parsePrice(v.Get("max_price")),
		Sort:         SortKey(v.Get("sort")),
		FirstEdition: v.Get("first_edition") == "on",
		InStock:      v.Get("in_stock") == "on",
	}
	if p.Sort == "" {
		p.Sort = SortPriceAsc
	}
	return p
}

func parsePrice(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
