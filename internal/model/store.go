package model

// StoreRow is one store's line from the metrics sheet. Columns keeps the
// header order so popups list metrics the way the sheet does.
type StoreRow struct {
	Columns []string
	Values  map[string]string
}

func (r StoreRow) Get(column string) string {
	return r.Values[column]
}

// StoreTable is keyed by lowercase store name.
type StoreTable map[string]StoreRow
