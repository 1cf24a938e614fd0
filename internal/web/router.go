// Package web serves the card search UI and its JSON twin.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cardscout/internal/demo"
)

// Deps wires the router. History is optional; without it the price history
// endpoint is not mounted.
type Deps struct {
	Search  Searcher
	Demo    *demo.Catalog
	History HistoryStore
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", IndexHandler(d.Demo))
	r.Get("/search", SearchHandler(d.Search, d.Demo))

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", APISearchHandler(d.Search))
		if d.History != nil {
			r.Get("/cards/{name}/history", HistoryHandler(d.History))
		}
	})

	return r
}
