package lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts a lesson. The partial unique index on
	// (tutor_id, scheduled_at) over non-cancelled rows is the arbiter under
	// concurrency: of N simultaneous inserts for the same slot exactly one
	// succeeds and the rest get ErrSlotTaken.
	Create(ctx context.Context, l *Lesson) error
	GetByID(ctx context.Context, id string) (*Lesson, error)
	List(ctx context.Context, filter Filter) ([]*Lesson, int, error)

	// ListActiveBetween returns pending and confirmed lessons for the tutor
	// with scheduled_at in [from, to).
	ListActiveBetween(ctx context.Context, tutorID string, from, to time.Time) ([]*Lesson, error)

	// UpdateStatusIf moves the lesson from one status to another in a single
	// conditional UPDATE. Returns false (no error) when the row was not in the
	// expected status, which includes the row not existing.
	UpdateStatusIf(ctx context.Context, id string, from, to Status) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, l *Lesson) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.lessons").
		Columns("tutor_id", "student_id", "skill_id", "title", "scheduled_at", "duration_minutes", "price", "status").
		Values(l.TutorID, l.StudentID, l.SkillID, l.Title, l.ScheduledAt, l.DurationMinutes, l.Price, l.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create lesson query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch e.Code {
			case pgerrcode.UniqueViolation:
				return ErrSlotTaken
			case pgerrcode.ForeignKeyViolation:
				return ErrSkillNotFound
			}
		}
		return fmt.Errorf("create lesson failed: %w", err)
	}
	return nil
}

// lessonSelect joins user display names and the skill name for presentation.
// Display name falls back to the email local part when unset.
func lessonSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"l.id", "l.tutor_id", "l.student_id", "l.skill_id",
		"l.title", "l.scheduled_at", "l.duration_minutes", "l.price", "l.status",
		"l.created_at", "l.updated_at",
		"COALESCE(t.display_name, split_part(t.email, '@', 1)) AS tutor_name",
		"COALESCE(s.display_name, split_part(s.email, '@', 1)) AS student_name",
		"sk.name AS skill_name",
	).
		From("public.lessons l").
		Join("public.users t ON l.tutor_id = t.id").
		Join("public.users s ON l.student_id = s.id").
		Join("public.skills sk ON l.skill_id = sk.id")
}

func scanLesson(row pgx.Row, l *Lesson) error {
	return row.Scan(
		&l.ID, &l.TutorID, &l.StudentID, &l.SkillID,
		&l.Title, &l.ScheduledAt, &l.DurationMinutes, &l.Price, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
		&l.TutorName, &l.StudentName, &l.SkillName,
	)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Lesson, error) {
	query, args, err := lessonSelect().
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lesson query failed: %w", err)
	}

	var l Lesson
	if err := scanLesson(r.pool.QueryRow(ctx, query, args...), &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lesson failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Lesson, int, error) {
	query := lessonSelect().
		Column("count(*) OVER() AS total_count").
		Where(squirrel.Or{
			squirrel.Eq{"l.tutor_id": filter.UserID},
			squirrel.Eq{"l.student_id": filter.UserID},
		})

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"l.status": filter.Status})
	}

	query = query.OrderBy("l.scheduled_at ASC")

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
		return nil, 0, fmt.Errorf("build list lessons query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons failed: %w", err)
	}
	defer rows.Close()

	var lessons []*Lesson
	var total int

	for rows.Next() {
		var l Lesson
		if err := rows.Scan(
			&l.ID, &l.TutorID, &l.StudentID, &l.SkillID,
			&l.Title, &l.ScheduledAt, &l.DurationMinutes, &l.Price, &l.Status,
			&l.CreatedAt, &l.UpdatedAt,
			&l.TutorName, &l.StudentName, &l.SkillName,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan lesson failed: %w", err)
		}
		lessons = append(lessons, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lessons failed: %w", err)
	}

	return lessons, total, nil
}

func (r *pgxRepository) ListActiveBetween(ctx context.Context, tutorID string, from, to time.Time) ([]*Lesson, error) {
	query, args, err := lessonSelect().
		Where(squirrel.Eq{"l.tutor_id": tutorID}).
		Where(squirrel.Eq{"l.status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.GtOrEq{"l.scheduled_at": from}).
		Where(squirrel.Lt{"l.scheduled_at": to}).
		OrderBy("l.scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active lessons query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active lessons failed: %w", err)
	}
	defer rows.Close()

	var lessons []*Lesson
	for rows.Next() {
		var l Lesson
		if err := scanLesson(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lesson failed: %w", err)
		}
		lessons = append(lessons, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons failed: %w", err)
	}

	return lessons, nil
}

func (r *pgxRepository) UpdateStatusIf(ctx context.Context, id string, from, to Status) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.lessons").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update lesson status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update lesson status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
