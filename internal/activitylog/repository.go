package activitylog

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO activity_logs (user_id, action, detail, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, e.UserID, e.Action, e.Detail).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	query := `
		SELECT id, user_id, action, detail, created_at
		FROM activity_logs
		WHERE 1=1`

	args := []any{}
	argIndex := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", argIndex)
		args = append(args, filter.Action)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if filter.Page > 1 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, (filter.Page-1)*limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
