package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)INSERT INTO users`).
			WithArgs("anna", "anna@example.com", "hashed", "customer").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "username", "email", "password_hash", "role", "status", "created_at",
			}).AddRow(int64(1), "anna", "anna@example.com", "hashed", "customer", "active", time.Now()))

		u, err := repo.Create(ctx, "anna", "anna@example.com", "hashed", "customer")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, RoleCustomer, u.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)INSERT INTO users`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, err = repo.Create(ctx, "anna", "anna@example.com", "hashed", "customer")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("ExcludesDeleted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM users\s+WHERE email = \$1 AND deleted_at IS NULL`).
			WithArgs("gone@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err = repo.FindByEmail(ctx, "gone@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM users\s+WHERE email = \$1`).
			WithArgs("anna@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "username", "email", "password_hash", "role", "status",
				"created_at", "updated_at", "deleted_at",
			}).AddRow(int64(1), "anna", "anna@example.com", "hashed", "customer", "active",
				time.Now(), nil, nil))

		u, err := repo.FindByEmail(ctx, "anna@example.com")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, u.Status)
	})
}

func TestRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`(?s)UPDATE users\s+SET status = 'inactive', deleted_at = \$2`).
			WithArgs(int64(1), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, 1))
	})

	t.Run("AlreadyDeleted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`(?s)UPDATE users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SoftDelete(ctx, 1), ErrUserNotFound)
	})
}
