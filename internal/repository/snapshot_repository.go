package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cardscout/internal/model"
)

const defaultHistoryLimit = 50

type SnapshotRepository struct {
	DB *pgxpool.Pool
}

// Save fills in ID and RecordedAt when they are zero.
func (r *SnapshotRepository) Save(ctx context.Context, s model.PriceSnapshot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	// NUMERIC goes over the wire as text; decimal keeps it exact
	_, err := r.DB.Exec(ctx, `
		INSERT INTO card_price_snapshots
		(id, name, set_name, market_price, url, recorded_at)
		VALUES ($1, $2, $3, $4::numeric, $5, COALESCE($6, now()))
	`, s.ID, strings.ToValidUTF8(s.Name, ""), s.Set, s.MarketPrice.StringFixed(2), s.URL, nullTime(s))

	return err
}

// History returns the newest snapshots first for a card name, matched
// case-insensitively.
func (r *SnapshotRepository) History(ctx context.Context, name string, limit int) ([]model.PriceSnapshot, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, name, set_name, market_price::text, url, recorded_at
		FROM card_price_snapshots
		WHERE lower(name) = lower($1)
		ORDER BY recorded_at DESC
		LIMIT $2
	`, strings.TrimSpace(name), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.PriceSnapshot
	for rows.Next() {
		var (
			s     model.PriceSnapshot
			price string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Set, &price, &s.URL, &s.RecordedAt); err != nil {
			return nil, err
		}
		s.MarketPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func nullTime(s model.PriceSnapshot) any {
	if s.RecordedAt.IsZero() {
		return nil
	}
	return s.RecordedAt
}
