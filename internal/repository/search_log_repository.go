package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"cardscout/internal/model"
)

type SearchLogRepository struct {
	DB *sql.DB
}

func (r *SearchLogRepository) Save(ctx context.Context, e model.SearchLogEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO search_log
		(id, query, first_edition, in_stock, source, result_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID.String(), e.Query, e.FirstEdition, e.InStock, e.Source, e.ResultCount)
	return err
}

// Recent lists the latest searches, newest first.
func (r *SearchLogRepository) Recent(ctx context.Context, limit int) ([]model.SearchLogEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, query, first_edition, in_stock, source, result_count, created_at
		FROM search_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.SearchLogEntry
	for rows.Next() {
		var (
			e  model.SearchLogEntry
			id string
		)
		if err := rows.Scan(&id, &e.Query, &e.FirstEdition, &e.InStock, &e.Source, &e.ResultCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
