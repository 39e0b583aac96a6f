package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"maison-be/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "price", "category", "stock", "image",
		"discount_enabled", "discount_type", "discount_value",
		"voucher_enabled", "voucher_code", "voucher_discount_type",
		"voucher_discount_value", "voucher_expiry_date",
		"created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(
			id, "Linen Shirt", "A shirt", 250000.0, "shirts", 10, nil,
			false, nil, nil,
			false, nil, nil, nil, nil,
			time.Now(), nil,
		)
	}
	return rows
}

func variantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "product_id", "color", "size", "quantity"})
}

func TestRepository_GetList(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM products p WHERE 1=1 ORDER BY p\.id LIMIT \$1 OFFSET \$2`).
			WithArgs(100, 0).
			WillReturnRows(productRows(1))

		mock.ExpectQuery(`(?s)SELECT id, product_id, color, size, quantity`).
			WillReturnRows(variantRows().AddRow(11, 1, "White", "M", 4))

		res, err := repo.GetList(ctx, ListOptions{})
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Len(t, res[0].Variants, 1)
		assert.Equal(t, "M", res[0].Variants[0].Size)
	})

	t.Run("WithFilters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* AND p\.category = \$1 AND \(p\.name ILIKE \$2 OR p\.description ILIKE \$2\)`).
			WithArgs("shirts", "%linen%", 20, 0).
			WillReturnRows(productRows())

		res, err := repo.GetList(ctx, ListOptions{Category: "shirts", Search: "linen", Limit: 20})
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .*`).WillReturnError(errors.New("db error"))

		_, err = repo.GetList(ctx, ListOptions{})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM products p WHERE p\.id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err = repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM products p WHERE p\.id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(productRows(1))
		mock.ExpectQuery(`(?s)SELECT id, product_id, color, size, quantity`).
			WillReturnRows(variantRows())

		p, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		assert.NotNil(t, p.Variants)
	})
}

func TestRepository_Create_ConsolidatesVariants(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)INSERT INTO products`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`DELETE FROM product_variants WHERE product_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Two duplicate inputs collapse into one insert with summed quantity.
	mock.ExpectExec(`(?s)INSERT INTO product_variants`).
		WithArgs(int64(7), "Red", "M", 5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`(?s)SELECT .* FROM products p WHERE p\.id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(productRows(7))
	mock.ExpectQuery(`(?s)SELECT id, product_id, color, size, quantity`).
		WillReturnRows(variantRows().AddRow(21, 7, "Red", "M", 5))

	input := NewProductInput{
		Name:  "Linen Shirt",
		Price: 250000,
		Stock: 10,
		Variants: []VariantInput{
			{Color: utils.StrPtr("Red"), Size: "M", Quantity: 3},
			{Color: utils.StrPtr(" Red "), Size: "M", Quantity: 2},
		},
	}

	p, err := repo.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		name := "x"
		_, err = repo.Update(ctx, 99, UpdateProductInput{Name: &name})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("VariantsReplacedInSameTx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM product_variants`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`(?s)INSERT INTO product_variants`).
			WithArgs(int64(1), nil, "L", 2).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		mock.ExpectQuery(`(?s)SELECT .* FROM products p WHERE p\.id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(productRows(1))
		mock.ExpectQuery(`(?s)SELECT id, product_id, color, size, quantity`).
			WillReturnRows(variantRows())

		_, err = repo.Update(ctx, 1, UpdateProductInput{
			Variants: []VariantInput{{Color: utils.StrPtr("  "), Size: "L", Quantity: 2}},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(ctx, 99), ErrProductNotFound)
}

func TestRepository_Bestsellers_FallsBackToNewArrivals(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`(?s)SELECT .* JOIN order_items oi`).
		WithArgs(6).
		WillReturnRows(productRows())
	mock.ExpectQuery(`(?s)SELECT .* ORDER BY p\.created_at DESC`).
		WithArgs(6).
		WillReturnRows(productRows(3))
	mock.ExpectQuery(`(?s)SELECT id, product_id, color, size, quantity`).
		WillReturnRows(variantRows())

	res, err := repo.Bestsellers(ctx, 6)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, int64(3), res[0].ID)
}
