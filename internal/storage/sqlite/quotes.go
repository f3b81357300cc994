package sqlite

import (
	"context"
	"fmt"
	"time"

	"silverradar/internal/market"
	"silverradar/internal/models"
)

// UpsertQuoteBatch journals every positive-price quote in the batch. The
// primary key folds repeated observations of the same listing into one row.
func (s *Store) UpsertQuoteBatch(ctx context.Context, batch models.QuoteBatch) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}
	if len(batch.Quotes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, quoteUpsertSQL)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	captured := batch.CapturedAt.UTC().Format(time.RFC3339Nano)
	for _, q := range batch.Quotes {
		if q.SellPriceMin <= 0 {
			continue
		}
		observed := q.ObservedAt().UTC().Format(time.RFC3339Nano)
		if _, err := stmt.ExecContext(
			ctx,
			string(batch.Region),
			q.ItemID,
			q.City,
			q.Quality,
			q.SellPriceMin,
			observed,
			captured,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

const quoteUpsertSQL = `
INSERT INTO quote_history (region, item_id, city, quality, price, observed_at, captured_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(region, item_id, city, quality, observed_at) DO UPDATE SET
	price=excluded.price,
	captured_at=excluded.captured_at;
`

// TrendPoint is one journaled price observation.
type TrendPoint struct {
	Price      int64     `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// RecentQuotes returns the newest journaled observations for one listing,
// newest first. It backs the history endpoint when the upstream aggregate
// API is unreachable.
func (s *Store) RecentQuotes(ctx context.Context, region market.Region, itemID, city string, quality, limit int) ([]TrendPoint, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialized")
	}
	if limit <= 0 {
		limit = 12
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT price, observed_at FROM quote_history
WHERE region = ? AND item_id = ? AND city = ? AND quality = ?
ORDER BY observed_at DESC
LIMIT ?`,
		string(region), itemID, city, quality, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var price int64
		var observed string
		if err := rows.Scan(&price, &observed); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, observed)
		if err != nil {
			return nil, fmt.Errorf("parse observed_at %q: %w", observed, err)
		}
		out = append(out, TrendPoint{Price: price, ObservedAt: ts})
	}
	return out, rows.Err()
}
