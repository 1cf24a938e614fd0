package search

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"cardscout/internal/cache"
	"cardscout/internal/demo"
	"cardscout/internal/model"
	"cardscout/internal/observability"
	"cardscout/internal/searchurl"
)

const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceDemo   = "demo"
)

type Fetcher interface {
	Search(ctx context.Context, query string, firstEdition, inStock bool) []model.CardRow
}

type Cache interface {
	Get(ctx context.Context, key string) ([]model.CardRow, bool)
	Set(ctx context.Context, key string, rows []model.CardRow) error
}

type SearchLog interface {
	Save(ctx context.Context, e model.SearchLogEntry) error
}

// Service is the /search pipeline. Cache and Log are optional.
type Service struct {
	Remote Fetcher
	Demo   *demo.Catalog
	URLs   searchurl.Builder
	Cache  Cache
	Log    SearchLog
}

type Result struct {
	Rows       []model.CardRow `json:"rows"`
	SearchURL  string          `json:"search_url"`
	HasFilters bool            `json:"has_filters"`
	Source     string          `json:"source"`
}

func (s *Service) Search(ctx context.Context, p model.SearchParams) Result {
	rows, source := s.rows(ctx, p)

	rows = FilterByPrice(rows, p.MinPrice, p.MaxPrice)
	SortRows(rows, p.Sort)

	if p.FirstEdition || p.InStock {
		for i := range rows {
			rows[i].URL = s.URLs.AugmentURL(rows[i].URL, p.FirstEdition, p.InStock)
		}
	}

	res := Result{
		Rows:       rows,
		SearchURL:  s.URLs.Base,
		HasFilters: p.Query != "" || p.MinPrice != nil || p.MaxPrice != nil,
		Source:     source,
	}
	if p.Query != "" {
		res.SearchURL = s.URLs.BuildSearchURL(p.Query, p.FirstEdition, p.InStock)
		s.record(ctx, p, res)
	}

	observability.SearchesTotal.WithLabelValues(source).Inc()
	return res
}

func (s *Service) rows(ctx context.Context, p model.SearchParams) ([]model.CardRow, string) {
	if p.Query == "" {
		return s.Demo.Cards(), SourceDemo
	}

	key := cache.Key(p.Query, p.FirstEdition, p.InStock)
	if s.Cache != nil {
		if rows, ok := s.Cache.Get(ctx, key); ok {
			return rows, SourceCache
		}
	}

	rows := s.Remote.Search(ctx, p.Query, p.FirstEdition, p.InStock)
	if len(rows) == 0 {
		return FilterByName(s.Demo.Cards(), p.Query), SourceDemo
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, rows); err != nil {
			log.Printf("[search] cache write for %q failed: %v", p.Query, err)
		}
	}
	return rows, SourceRemote
}

func (s *Service) record(ctx context.Context, p model.SearchParams, res Result) {
	if s.Log == nil {
		return
	}
	entry := model.SearchLogEntry{
		ID:           uuid.New(),
		Query:        p.Query,
		FirstEdition: p.FirstEdition,
		InStock:      p.InStock,
		Source:       res.Source,
		ResultCount:  len(res.Rows),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Log.Save(ctx, entry); err != nil {
		log.Printf("[search] search log write failed: %v", err)
	}
}
