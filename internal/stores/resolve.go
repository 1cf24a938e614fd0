package stores

import (
	"strings"

	"cardscout/internal/model"
)

// Lookup is an exact, case-insensitive match on the store name.
func Lookup(table model.StoreTable, name string) (model.StoreRow, bool) {
	row, ok := table[strings.ToLower(strings.TrimSpace(name))]
	return row, ok
}

// CityFrom scans the row for cityColumn (any case), then the usual spellings.
func CityFrom(row model.StoreRow, cityColumn string) string {
	target := strings.ToLower(strings.TrimSpace(cityColumn))
	for _, col := range row.Columns {
		if strings.ToLower(strings.TrimSpace(col)) != target {
			continue
		}
		if v := clean(row.Values[col]); v != "" {
			return v
		}
	}
	for _, alt := range []string{"city", "City", "CITY"} {
		if v := clean(row.Values[alt]); v != "" {
			return v
		}
	}
	return ""
}

// TargetSource says where the map target came from.
type TargetSource string

const (
	FromInput     TargetSource = "input"
	FromData      TargetSource = "data file"
	FromStoreName TargetSource = "store name"
)

// ResolveTarget picks what to geocode: the explicit city, else the row's city,
// else the store name itself.
func ResolveTarget(store, city string, row model.StoreRow, found bool, cityColumn string) (string, TargetSource) {
	if c := strings.TrimSpace(city); c != "" {
		return c, FromInput
	}
	if found {
		if c := CityFrom(row, cityColumn); c != "" {
			return c, FromData
		}
	}
	return store, FromStoreName
}
