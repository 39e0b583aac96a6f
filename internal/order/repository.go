package order

import (
	"context"
	"database/sql"
	"fmt"

	"maison-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx writes the order and its items in one transaction.
	// The insert is guarded by the unique index on payment_method: when
	// another delivery of the same session already created the order,
	// nothing is written and created is false.
	CreateOrderTx(ctx context.Context, o *Order) (created bool, err error)

	GetByPaymentMethod(ctx context.Context, paymentMethod string) (*Order, error)
	GetDetail(ctx context.Context, orderID int64) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status OrderStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) (bool, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "CreateOrderTx"))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// ON CONFLICT DO NOTHING makes the check-then-insert atomic: two
	// concurrent deliveries of the same session both reach this insert,
	// the database lets exactly one win. The conflict target repeats
	// the partial index predicate; Postgres only infers a partial
	// unique index as the arbiter when the predicate is spelled out.
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, status, total_amount,
			payment_method, payment_status,
			shipping_address, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (payment_method) WHERE payment_method IS NOT NULL DO NOTHING
		RETURNING id, created_at
	`,
		o.UserID, o.Status, o.TotalAmount,
		o.PaymentMethod, o.PaymentStatus,
		o.ShippingAddress, o.Notes,
	).Scan(&o.ID, &o.CreatedAt)

	if err == sql.ErrNoRows {
		// Lost the race: an order for this session already exists.
		return false, nil
	}
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return false, err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int64("order_id", o.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int("items", len(o.Items)),
	)

	return true, nil
}

func (r *repository) GetByPaymentMethod(ctx context.Context, paymentMethod string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, total_amount, payment_method,
		       payment_status, shipping_address, notes, created_at, updated_at
		FROM orders
		WHERE payment_method = $1
	`, paymentMethod).Scan(
		&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.PaymentMethod,
		&o.PaymentStatus, &o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetDetail(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, total_amount, payment_method,
		       payment_status, shipping_address, notes, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.PaymentMethod,
		&o.PaymentStatus, &o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "ListOrders"))

	query := `
		SELECT id, user_id, status, total_amount, payment_method,
		       payment_status, shipping_address, notes, created_at, updated_at
		FROM orders
		WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.PaymentMethod,
			&o.PaymentStatus, &o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int64, status OrderStatus) error {
	// The terminal guard lives in the UPDATE itself so two concurrent
	// transitions cannot both pass a prior read of the status.
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status NOT IN ('completed', 'cancelled')
	`, orderID, status)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Zero rows: either the order is gone or it already reached a
	// terminal status. Tell the two apart for the caller.
	var current OrderStatus
	err = r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	return ErrOrderImmutable
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.product_id, oi.quantity, oi.price, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Items = []OrderItem{}
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName); err != nil {
			return err
		}
		item.OrderID = o.ID
		o.Items = append(o.Items, item)
	}

	return rows.Err()
}
