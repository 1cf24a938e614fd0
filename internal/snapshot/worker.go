// Package snapshot refreshes prices for the popular cards list and records
// them for the history endpoint.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cardscout/internal/model"
	"cardscout/internal/observability"
)

const pace = 100 * time.Millisecond

var errNoCard = errors.New("no card found")

type Fetcher interface {
	Fetch(ctx context.Context, query string, firstEdition, inStock bool) ([]model.CardRow, error)
}

type Store interface {
	Save(ctx context.Context, s model.PriceSnapshot) error
}

type Summary struct {
	Recorded int64
	Failed   int64
}

// Runner fans card names out to Workers goroutines. Each job waits Pace
// before calling the card API to stay under its rate limit.
type Runner struct {
	Fetcher Fetcher
	Store   Store
	Workers int
	Pace    time.Duration
}

func (r *Runner) Run(ctx context.Context, names []string) Summary {
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	wait := r.Pace
	if wait == 0 {
		wait = pace
	}

	jobs := make(chan string, len(names))
	var (
		wg  sync.WaitGroup
		sum Summary
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				select {
				case <-ctx.Done():
					atomic.AddInt64(&sum.Failed, 1)
					continue
				case <-time.After(wait):
				}

				if err := r.process(ctx, name); err != nil {
					atomic.AddInt64(&sum.Failed, 1)
					observability.SnapshotsRecorded.WithLabelValues("failed").Inc()
					log.Printf("[snapshot] %s: %v", name, err)
					continue
				}
				atomic.AddInt64(&sum.Recorded, 1)
				observability.SnapshotsRecorded.WithLabelValues("recorded").Inc()
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	return sum
}

func (r *Runner) process(ctx context.Context, name string) error {
	rows, err := r.Fetcher.Fetch(ctx, name, false, false)
	if err != nil {
		return err
	}
	row, ok := pick(rows, name)
	if !ok {
		return errNoCard
	}

	if err := r.Store.Save(ctx, model.PriceSnapshot{
		Name:        name,
		Set:         row.Set,
		MarketPrice: row.MarketPrice,
		URL:         row.URL,
		RecordedAt:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	log.Printf("[snapshot] %s: %s", name, row.MarketPrice.StringFixed(2))
	return nil
}

// pick prefers the exact name over the fuzzy search's first hit.
func pick(rows []model.CardRow, name string) (model.CardRow, bool) {
	if len(rows) == 0 {
		return model.CardRow{}, false
	}
	for _, row := range rows {
		if strings.EqualFold(row.Name, name) {
			return row, true
		}
	}
	return rows[0], true
}
