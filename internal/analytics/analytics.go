package analytics

import (
	"context"
	"database/sql"
)

// Summary is the admin dashboard snapshot. Revenue counts only orders
// whose payment completed; everything else is noise for accounting.
type Summary struct {
	TotalRevenue   float64          `json:"total_revenue"`
	TotalOrders    int64            `json:"total_orders"`
	TotalCustomers int64            `json:"total_customers"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TopProducts    []ProductSales   `json:"top_products"`
}

type ProductSales struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Summary(ctx context.Context) (*Summary, error) {
	s := &Summary{OrdersByStatus: map[string]int64{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'completed'), 0),
			COUNT(*)
		FROM orders`).Scan(&s.TotalRevenue, &s.TotalOrders)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users
		WHERE role = 'customer' AND deleted_at IS NULL`).Scan(&s.TotalCustomers)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		s.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	top, err := r.topProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	s.TopProducts = top

	return s, nil
}

func (r *repository) topProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, SUM(oi.quantity), SUM(oi.quantity * oi.price)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.payment_status = 'completed'
		GROUP BY p.id, p.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductSales
	for rows.Next() {
		var ps ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.Name, &ps.UnitsSold, &ps.Revenue); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}

	return out, rows.Err()
}
