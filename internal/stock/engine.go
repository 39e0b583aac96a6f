// Package stock derives product availability from the order ledger.
//
// Availability is never stored: it is recomputed from initial stock
// minus everything ever ordered, on every read. Inserting order items
// is the only "decrement" in the system, which makes a cached counter
// impossible to drift from the ledger.
package stock

import (
	"context"
	"database/sql"

	"maison-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Available returns max(0, initial_stock - sum of ordered quantities)
// for the product. Order items count regardless of order status: a
// cancelled order still depresses availability. That matches the
// historical behavior of the ledger and is intentional until product
// decides cancellations should restock.
func (e *Engine) Available(ctx context.Context, productID int64) (int, error) {
	var available int
	err := e.db.QueryRowContext(ctx, `
		SELECT p.stock - COALESCE(SUM(oi.quantity), 0)
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		WHERE p.id = $1
		GROUP BY p.id, p.stock
	`, productID).Scan(&available)

	if err == sql.ErrNoRows {
		return 0, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to compute availability",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return 0, err
	}

	if available < 0 {
		available = 0
	}

	return available, nil
}

// AvailableBatch computes availability for many products in one
// grouped query. Products that do not exist are absent from the map.
func (e *Engine) AvailableBatch(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	rows, err := e.db.QueryContext(ctx, `
		SELECT p.id, p.stock - COALESCE(SUM(oi.quantity), 0)
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		WHERE p.id = ANY($1)
		GROUP BY p.id, p.stock
	`, pq.Array(productIDs))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to compute batch availability", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        int64
			available int
		)
		if err := rows.Scan(&id, &available); err != nil {
			return nil, err
		}
		if available < 0 {
			available = 0
		}
		result[id] = available
	}

	return result, rows.Err()
}
