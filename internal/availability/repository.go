package availability

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
	// Create inserts a rule. The availability_rules exclusion constraint is the
	// transactional authority on non-overlap; a violation maps to ErrOverlappingRule.
	Create(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, tutorID, id string) error
	ListByTutor(ctx context.Context, tutorID string) ([]*Rule, error)
	ListForDay(ctx context.Context, tutorID string, day int) ([]*Rule, error)

	// HasOverlap checks whether [startMin, endMin) intersects any stored rule
	// for the tutor/day. Used as a pre-check for a friendly error; the DB
	// constraint still guards against concurrent inserts.
	HasOverlap(ctx context.Context, tutorID string, day, startMin, endMin int) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_rules").
		Columns("tutor_id", "day_of_week", "start_min", "end_min").
		Values(rule.TutorID, rule.DayOfWeek, rule.StartMin, rule.EndMin).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create rule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ExclusionViolation {
			return ErrOverlappingRule
		}
		return fmt.Errorf("create rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, tutorID, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_rules").
		Where(squirrel.Eq{"id": id, "tutor_id": tutorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Unknown id or a rule owned by someone else: indistinguishable on purpose.
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByTutor(ctx context.Context, tutorID string) ([]*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "tutor_id", "day_of_week", "start_min", "end_min", "created_at").
		From("public.availability_rules").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		OrderBy("day_of_week ASC", "start_min ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rules query failed: %w", err)
	}

	return r.queryRules(ctx, query, args)
}

func (r *pgxRepository) ListForDay(ctx context.Context, tutorID string, day int) ([]*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "tutor_id", "day_of_week", "start_min", "end_min", "created_at").
		From("public.availability_rules").
		Where(squirrel.Eq{"tutor_id": tutorID, "day_of_week": day}).
		OrderBy("start_min ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rules for day query failed: %w", err)
	}

	return r.queryRules(ctx, query, args)
}

func (r *pgxRepository) queryRules(ctx context.Context, query string, args []any) ([]*Rule, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		var rule Rule
		if err := rows.Scan(
			&rule.ID, &rule.TutorID, &rule.DayOfWeek, &rule.StartMin, &rule.EndMin, &rule.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rule failed: %w", err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules failed: %w", err)
	}

	return rules, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, tutorID string, day, startMin, endMin int) (bool, error) {
	// Overlap test for half-open intervals: NewStart < ExistingEnd AND NewEnd > ExistingStart
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.availability_rules").
		Where(squirrel.Eq{"tutor_id": tutorID, "day_of_week": day}).
		Where(squirrel.Lt{"start_min": endMin}).
		Where(squirrel.Gt{"end_min": startMin})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
