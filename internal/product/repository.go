package product

import (
	"context"
	"database/sql"
	"fmt"

	"maison-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetList(ctx context.Context, opts ListOptions) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
	Bestsellers(ctx context.Context, limit int) ([]*Product, error)
	NewArrivals(ctx context.Context, limit int) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.category, p.stock, p.image,
	p.discount_enabled, p.discount_type, p.discount_value,
	p.voucher_enabled, p.voucher_code, p.voucher_discount_type,
	p.voucher_discount_value, p.voucher_expiry_date,
	p.created_at, p.updated_at`

func (r *repository) GetList(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "GetList"))

	query := `SELECT ` + productColumns + ` FROM products p WHERE 1=1`
	args := []any{}
	argIndex := 1

	if opts.Category != "" {
		query += fmt.Sprintf(" AND p.category = $%d", argIndex)
		args = append(args, opts.Category)
		argIndex++
	}

	if opts.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+opts.Search+"%")
		argIndex++
	}

	query += " ORDER BY p.id"

	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, opts.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		log.Error("failed to scan product rows", zap.Error(err))
		return nil, err
	}

	if err := r.loadVariants(ctx, products); err != nil {
		log.Error("failed to load variants", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadVariants(ctx, []*Product{p}); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "CreateProduct"))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	discount, voucher := normalizeTerms(input.Discount, input.Voucher)

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (
			name, description, price, category, stock, image,
			discount_enabled, discount_type, discount_value,
			voucher_enabled, voucher_code, voucher_discount_type,
			voucher_discount_value, voucher_expiry_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id
	`,
		input.Name, input.Description, input.Price, input.Category, input.Stock, input.Image,
		discount.Enabled, discount.Type, discount.Value,
		voucher.Enabled, voucher.Code, voucher.DiscountType,
		voucher.Value, voucher.ExpiryDate,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	if err := replaceVariantsTx(ctx, tx, id, input.Variants); err != nil {
		log.Error("failed to insert variants", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("product created", zap.Int64("product_id", id))

	return r.GetByID(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "UpdateProduct"),
		zap.Int64("product_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := "UPDATE products SET updated_at = NOW()"
	args := []any{}
	argIndex := 1

	appendSet := func(column string, value any) {
		query += fmt.Sprintf(", %s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if input.Name != nil {
		appendSet("name", *input.Name)
	}
	if input.Description != nil {
		appendSet("description", *input.Description)
	}
	if input.Price != nil {
		appendSet("price", *input.Price)
	}
	if input.Category != nil {
		appendSet("category", *input.Category)
	}
	if input.Stock != nil {
		appendSet("stock", *input.Stock)
	}
	if input.Image != nil {
		appendSet("image", *input.Image)
	}
	if input.Discount != nil {
		appendSet("discount_enabled", input.Discount.Enabled)
		appendSet("discount_type", input.Discount.Type)
		appendSet("discount_value", input.Discount.Value)
	}
	if input.Voucher != nil {
		appendSet("voucher_enabled", input.Voucher.Enabled)
		appendSet("voucher_code", input.Voucher.Code)
		appendSet("voucher_discount_type", input.Voucher.DiscountType)
		appendSet("voucher_discount_value", input.Voucher.Value)
		appendSet("voucher_expiry_date", input.Voucher.ExpiryDate)
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, id)

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	// Variants are replaced wholesale, inside the same transaction, so
	// readers never observe a product with zero variants mid-update.
	if input.Variants != nil {
		if err := replaceVariantsTx(ctx, tx, id, input.Variants); err != nil {
			log.Error("failed to replace variants", zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("product updated")

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	// Variants and comments go with it via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Bestsellers ranks products by quantity sold across completed, paid
// orders. Falls back to newest products still in stock when no such
// orders exist yet.
func (r *repository) Bestsellers(ctx context.Context, limit int) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'completed' AND o.payment_status = 'completed'
		GROUP BY p.id
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return r.NewArrivals(ctx, limit)
	}

	if err := r.loadVariants(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) NewArrivals(ctx context.Context, limit int) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadVariants(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// replaceVariantsTx implements the replace-semantics variant write:
// delete everything, then insert the consolidated set.
func replaceVariantsTx(ctx context.Context, tx *sql.Tx, productID int64, input []VariantInput) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return err
	}

	for _, v := range ConsolidateVariants(input) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_variants (product_id, color, size, quantity)
			VALUES ($1, $2, $3, $4)
		`, productID, v.Color, v.Size, v.Quantity); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) loadVariants(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[int64]*Product, len(products))
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		p.Variants = []Variant{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, color, size, quantity
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Color, &v.Size, &v.Quantity); err != nil {
			return err
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p               Product
		discountEnabled bool
		discountType    *string
		discountValue   *float64
		voucherEnabled  bool
		voucherCode     *string
		voucherType     *string
		voucherValue    *float64
		voucherExpiry   sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &p.Image,
		&discountEnabled, &discountType, &discountValue,
		&voucherEnabled, &voucherCode, &voucherType, &voucherValue, &voucherExpiry,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discountEnabled {
		d := Discount{Enabled: true, Value: discountValue}
		if discountType != nil {
			t := DiscountType(*discountType)
			d.Type = &t
		}
		p.Discount = &d
	}

	if voucherEnabled {
		v := Voucher{Enabled: true, Code: voucherCode, Value: voucherValue}
		if voucherType != nil {
			t := DiscountType(*voucherType)
			v.DiscountType = &t
		}
		if voucherExpiry.Valid {
			v.ExpiryDate = &voucherExpiry.Time
		}
		p.Voucher = &v
	}

	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]*Product, error) {
	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// normalizeTerms fills disabled defaults so the insert never writes
// NULL into the boolean flags.
func normalizeTerms(d *Discount, v *Voucher) (Discount, Voucher) {
	discount := Discount{}
	if d != nil {
		discount = *d
	}
	voucher := Voucher{}
	if v != nil {
		voucher = *v
	}
	return discount, voucher
}
