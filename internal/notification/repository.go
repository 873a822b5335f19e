package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, n *Notification) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.notifications").
		Columns("user_id", "type", "title", "message", "link").
		Values(n.UserID, n.Type, n.Title, n.Message, n.Link).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create notification query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&n.ID, &n.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Notification, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "user_id", "type", "title", "message", "link", "read_at", "created_at").
		From("public.notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get notification query failed: %w", err)
	}

	var n Notification
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.ReadAt, &n.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get notification failed: %w", err)
	}
	return &n, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "user_id", "type", "title", "message", "link", "read_at", "created_at", "count(*) OVER() as total_count").
		From("public.notifications").
		Where(squirrel.Eq{"user_id": filter.UserID})

	if filter.UnreadOnly {
		query = query.Where(squirrel.Eq{"read_at": nil})
	}

	query = query.OrderBy("created_at DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list notifications query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications failed: %w", err)
	}
	defer rows.Close()

	var result []*Notification
	var total int

	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.ReadAt, &n.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan notification failed: %w", err)
		}
		result = append(result, &n)
	}

	return result, total, nil
}

func (r *pgxRepository) MarkRead(ctx context.Context, userID, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.notifications").
		Set("read_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark notification read failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Unknown id or not owned by the caller; indistinguishable on purpose.
		return ErrNotFound
	}
	return nil
}
