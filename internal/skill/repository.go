package skill

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// FindOrCreate resolves a free-text name to a skill, creating it on first
	// use. Matching is case-insensitive and the operation is a single upsert,
	// so concurrent calls with the same name converge on one row.
	FindOrCreate(ctx context.Context, name string) (*Skill, error)
	GetByID(ctx context.Context, id string) (*Skill, error)
	List(ctx context.Context, filter Filter) ([]*Skill, int, error)

	Link(ctx context.Context, userID, skillID string, kind LinkKind) error
	Unlink(ctx context.Context, userID, skillID string, kind LinkKind) error
	ListForUser(ctx context.Context, userID string) ([]*UserSkill, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) FindOrCreate(ctx context.Context, name string) (*Skill, error) {
	// The DO UPDATE arm is a no-op write that lets RETURNING yield the existing
	// row, keeping its display name exactly as first typed.
	const query = `
		INSERT INTO public.skills (name, category, description)
		VALUES ($1, $2, $3)
		ON CONFLICT ((lower(name)))
		DO UPDATE SET name = public.skills.name
		RETURNING id, name, category, description, created_at
	`

	var s Skill
	if err := r.pool.QueryRow(ctx, query, name, DefaultCategory, DefaultDescription).Scan(
		&s.ID, &s.Name, &s.Category, &s.Description, &s.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("find or create skill failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Skill, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "category", "description", "created_at").
		From("public.skills").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get skill query failed: %w", err)
	}

	var s Skill
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Name, &s.Category, &s.Description, &s.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get skill failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Skill, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "name", "category", "description", "created_at", "count(*) OVER() as total_count").
		From("public.skills")

	if filter.Keyword != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Keyword + "%"})
	}

	query = query.OrderBy("name ASC")

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
		return nil, 0, fmt.Errorf("build list skills query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list skills failed: %w", err)
	}
	defer rows.Close()

	var skills []*Skill
	var total int

	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan skill failed: %w", err)
		}
		skills = append(skills, &s)
	}

	return skills, total, nil
}

func (r *pgxRepository) Link(ctx context.Context, userID, skillID string, kind LinkKind) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.user_skills").
		Columns("user_id", "skill_id", "kind").
		Values(userID, skillID, kind).
		ToSql()
	if err != nil {
		return fmt.Errorf("build link skill query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch e.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyLinked
			case pgerrcode.ForeignKeyViolation:
				return ErrNotFound
			}
		}
		return fmt.Errorf("link skill failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Unlink(ctx context.Context, userID, skillID string, kind LinkKind) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.user_skills").
		Where(squirrel.Eq{"user_id": userID, "skill_id": skillID, "kind": kind}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build unlink skill query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unlink skill failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotLinked
	}
	return nil
}

func (r *pgxRepository) ListForUser(ctx context.Context, userID string) ([]*UserSkill, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("s.id", "s.name", "s.category", "s.description", "s.created_at", "us.kind").
		From("public.user_skills us").
		Join("public.skills s ON us.skill_id = s.id").
		Where(squirrel.Eq{"us.user_id": userID}).
		OrderBy("us.kind ASC", "s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list user skills query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list user skills failed: %w", err)
	}
	defer rows.Close()

	var result []*UserSkill
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(
			&us.Skill.ID, &us.Skill.Name, &us.Skill.Category, &us.Skill.Description, &us.Skill.CreatedAt, &us.Kind,
		); err != nil {
			return nil, fmt.Errorf("scan user skill failed: %w", err)
		}
		result = append(result, &us)
	}

	return result, nil
}
