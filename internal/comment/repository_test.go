package comment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentColumns() []string {
	return []string{
		"id", "product_id", "user_id", "username", "email",
		"rating", "comment", "created_at", "updated_at",
	}
}

func TestRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`(?s)INSERT INTO product_comments`).
		WithArgs(int64(1), int64(3), 4, "Great linen, runs slightly large.").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(7), time.Now()))

	c := &Comment{ProductID: 1, UserID: 3, Rating: 4, Body: "Great linen, runs slightly large."}
	require.NoError(t, repo.Insert(context.Background(), c))
	assert.Equal(t, int64(7), c.ID)
}

func TestRepository_List_FilterByProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	productID := int64(1)
	mock.ExpectQuery(`(?s)SELECT .* FROM product_comments c.*JOIN users u.*AND c\.product_id = \$1.*LIMIT \$2`).
		WithArgs(productID, 100).
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(int64(7), productID, int64(3), "anna", "anna@example.com", 4, "Great linen.", time.Now(), nil))

	comments, err := repo.List(context.Background(), ListFilter{ProductID: &productID})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "anna", comments[0].Username)
	assert.Equal(t, 4, comments[0].Rating)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`(?s)SELECT .* FROM product_comments`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(commentColumns()))

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestRepository_Delete(t *testing.T) {
	t.Run("Removed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`DELETE FROM product_comments WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 7))
	})

	t.Run("Missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`DELETE FROM product_comments WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrCommentNotFound)
	})
}

func TestRepository_ListWithProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`(?s)SELECT .* FROM product_comments c.*JOIN products p.*LIMIT \$1 OFFSET \$2`).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "name", "user_id", "username", "email",
			"rating", "comment", "created_at", "updated_at",
		}).AddRow(int64(7), int64(1), "Linen Shirt", int64(3), "anna", "anna@example.com", 4, "Great linen.", time.Now(), nil))

	comments, err := repo.ListWithProduct(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Linen Shirt", comments[0].ProductName)
}
