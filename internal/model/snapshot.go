package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceSnapshot struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Set         string          `json:"set"`
	MarketPrice decimal.Decimal `json:"market_price"`
	URL         string          `json:"url"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

type SearchLogEntry struct {
	ID           uuid.UUID
	Query        string
	FirstEdition bool
	InStock      bool
	Source       string
	ResultCount  int
	CreatedAt    time.Time
}
