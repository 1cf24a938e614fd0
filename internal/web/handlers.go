package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"cardscout/internal/demo"
	"cardscout/internal/model"
	"cardscout/internal/search"
)

// maxHistoryLimit caps ?limit on the price history endpoint.
const maxHistoryLimit = 500

type Searcher interface {
	Search(ctx context.Context, p model.SearchParams) search.Result
}

type HistoryStore interface {
	History(ctx context.Context, name string, limit int) ([]model.PriceSnapshot, error)
}

type pageView struct {
	Query        string
	MinPrice     string
	MaxPrice     string
	Sort         string
	FirstEdition bool
	InStock      bool
	DemoCards    []model.CardRow

	Cards      []model.CardRow
	SearchURL  string
	HasFilters bool
	Source     string
}

func IndexHandler(cards *demo.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, "index", pageView{
			Sort:      string(model.SortPriceAsc),
			DemoCards: cards.Cards(),
		})
	}
}

func SearchHandler(svc Searcher, cards *demo.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := model.ParseSearchParams(r.URL.Query())
		res := svc.Search(r.Context(), p)

		render(w, "results", pageView{
			Query:        p.Query,
			MinPrice:     priceValue(p.MinPrice),
			MaxPrice:     priceValue(p.MaxPrice),
			Sort:         string(p.Sort),
			FirstEdition: p.FirstEdition,
			InStock:      p.InStock,
			DemoCards:    cards.Cards(),
			Cards:        res.Rows,
			SearchURL:    res.SearchURL,
			HasFilters:   res.HasFilters,
			Source:       res.Source,
		})
	}
}

func APISearchHandler(svc Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := svc.Search(r.Context(), model.ParseSearchParams(r.URL.Query()))
		if res.Rows == nil {
			res.Rows = []model.CardRow{}
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func HistoryHandler(store HistoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit > maxHistoryLimit {
			limit = maxHistoryLimit
		}

		history, err := store.History(r.Context(), name, limit)
		if err != nil {
			log.Printf("[web] history for %q: %v", name, err)
			http.Error(w, "could not load price history", http.StatusInternalServerError)
			return
		}
		if history == nil {
			history = []model.PriceSnapshot{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"name": name, "snapshots": history})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[web] encode response: %v", err)
	}
}

func priceValue(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
