package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

// GetTotalsByCategoryName sums categorized transactions over the whole
// history, keyed by category name. Feeds the dashboard chart.
func GetTotalsByCategoryName(ctx context.Context, pool *pgxpool.Pool, userID int64) (map[string]int64, error) {
	query := `
		SELECT c.name, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		GROUP BY c.name
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var name string
		var sum int64
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, err
		}
		totals[name] = sum
	}
	return totals, rows.Err()
}

// GetTotalsByCategoryID sums transactions of one type within a date range,
// keyed by category ID. Feeds the aggregate table.
func GetTotalsByCategoryID(ctx context.Context, pool *pgxpool.Pool, userID int64, txType models.TransactionType, start, end time.Time) (map[int64]int64, error) {
	query := `
		SELECT t.category_id, SUM(t.amount)
		FROM transactions t
		WHERE t.user_id = $1 AND t.type = $2 AND t.category_id IS NOT NULL AND t.date >= $3 AND t.date <= $4
		GROUP BY t.category_id
	`
	rows, err := pool.Query(ctx, query, userID, txType, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int64)
	for rows.Next() {
		var categoryID, sum int64
		if err := rows.Scan(&categoryID, &sum); err != nil {
			return nil, err
		}
		totals[categoryID] = sum
	}
	return totals, rows.Err()
}
