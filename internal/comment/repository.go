package comment

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	Insert(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id int64) (*Comment, error)
	List(ctx context.Context, filter ListFilter) ([]*Comment, error)
	ListWithProduct(ctx context.Context, limit, skip int) ([]*Comment, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO product_comments (product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, c.ProductID, c.UserID, c.Rating, c.Body).
		Scan(&c.ID, &c.CreatedAt)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	query := `
		SELECT c.id, c.product_id, c.user_id, u.username, u.email,
		       c.rating, c.comment, c.created_at, c.updated_at
		FROM product_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`

	var c Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ProductID, &c.UserID, &c.Username, &c.UserEmail,
		&c.Rating, &c.Body, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Comment, error) {
	query := `
		SELECT c.id, c.product_id, c.user_id, u.username, u.email,
		       c.rating, c.comment, c.created_at, c.updated_at
		FROM product_comments c
		JOIN users u ON u.id = c.user_id
		WHERE 1=1`

	args := []any{}
	argIndex := 1

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND c.product_id = $%d", argIndex)
		args = append(args, *filter.ProductID)
		argIndex++
	}

	query += " ORDER BY c.created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if filter.Skip > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Skip)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(
			&c.ID, &c.ProductID, &c.UserID, &c.Username, &c.UserEmail,
			&c.Rating, &c.Body, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

func (r *repository) ListWithProduct(ctx context.Context, limit, skip int) ([]*Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	query := `
		SELECT c.id, c.product_id, p.name, c.user_id, u.username, u.email,
		       c.rating, c.comment, c.created_at, c.updated_at
		FROM product_comments c
		JOIN users u ON u.id = c.user_id
		JOIN products p ON p.id = c.product_id
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(
			&c.ID, &c.ProductID, &c.ProductName, &c.UserID, &c.Username, &c.UserEmail,
			&c.Rating, &c.Body, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_comments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
