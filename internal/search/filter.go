package search

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"cardscout/internal/model"
)

// FilterByPrice keeps rows with min <= market price <= max. A nil bound is
// not applied. The input slice is not modified.
func FilterByPrice(rows []model.CardRow, min, max *decimal.Decimal) []model.CardRow {
	out := make([]model.CardRow, 0, len(rows))
	for _, r := range rows {
		if min != nil && r.MarketPrice.LessThan(*min) {
			continue
		}
		if max != nil && r.MarketPrice.GreaterThan(*max) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortRows sorts in place. Unknown keys leave the order as it is.
func SortRows(rows []model.CardRow, key model.SortKey) {
	switch key {
	case model.SortPriceAsc:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].MarketPrice.LessThan(rows[j].MarketPrice)
		})
	case model.SortPriceDesc:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].MarketPrice.GreaterThan(rows[j].MarketPrice)
		})
	case model.SortName:
		sort.SliceStable(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
		})
	}
}

// FilterByName is a case-insensitive substring match on name or set.
func FilterByName(rows []model.CardRow, query string) []model.CardRow {
	q := strings.ToLower(query)
	out := make([]model.CardRow, 0)
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Set), q) {
			out = append(out, r)
		}
	}
	return out
}
