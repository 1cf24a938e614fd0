package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cardscout/internal/model"
)

const keyPrefix = "cardscout:search:"

// ResultCache keeps successful remote searches for TTL.
type ResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewClient accepts a redis:// URL or a bare host:port address.
func NewClient(addr string) (*redis.Client, error) {
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

// Key is case-insensitive on the query since the card API's fuzzy search is.
func Key(query string, firstEdition, inStock bool) string {
	return fmt.Sprintf("%s%s|fe=%t|is=%t", keyPrefix, strings.ToLower(strings.TrimSpace(query)), firstEdition, inStock)
}

// Get treats misses, redis errors and undecodable values alike.
func (c *ResultCache) Get(ctx context.Context, key string) ([]model.CardRow, bool) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var rows []model.CardRow
	if err := json.Unmarshal([]byte(val), &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *ResultCache) Set(ctx context.Context, key string, rows []model.CardRow) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, b, c.TTL).Err()
}
