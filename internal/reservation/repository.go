package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists a reservation whose ID has already been assigned by
	// the scheduler.
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Reservation, error)
	// ListAll returns every reservation ordered by (classroom_id, start_time),
	// the key the interval indexes are rebuilt from.
	ListAll(ctx context.Context) ([]*Reservation, error)
	UpdateTimes(ctx context.Context, id string, start, end time.Time) error
	Delete(ctx context.Context, id string) error

	// HasUpcoming reports whether any reservation with end_time > now still
	// references the classroom.
	HasUpcoming(ctx context.Context, classroomID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("reservations").
		Columns("id", "classroom_id", "owner_id", "start_time", "end_time").
		Values(res.ID, res.ClassroomID, res.OwnerID, res.StartTime, res.EndTime).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&res.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.classroom_id", "c.name", "r.owner_id",
		"r.start_time", "r.end_time", "r.created_at",
	).
		From("reservations r").
		Join("classrooms c ON r.classroom_id = c.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	var res Reservation
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&res.ID, &res.ClassroomID, &res.ClassroomName, &res.OwnerID,
		&res.StartTime, &res.EndTime, &res.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) list(ctx context.Context, where squirrel.Sqlizer, orderBy string) ([]*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.classroom_id", "c.name", "r.owner_id",
		"r.start_time", "r.end_time", "r.created_at",
	).
		From("reservations r").
		Join("classrooms c ON r.classroom_id = c.id").
		OrderBy(orderBy)

	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.ClassroomID, &res.ClassroomName, &res.OwnerID,
			&res.StartTime, &res.EndTime, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, rows.Err()
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Reservation, error) {
	return r.list(ctx, squirrel.Eq{"r.owner_id": ownerID}, "r.start_time ASC")
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Reservation, error) {
	return r.list(ctx, nil, "r.classroom_id, r.start_time ASC")
}

func (r *pgxRepository) UpdateTimes(ctx context.Context, id string, start, end time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("reservations").
		Set("start_time", start).
		Set("end_time", end).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasUpcoming(ctx context.Context, classroomID string, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE classroom_id = $1 AND end_time > $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, classroomID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("check upcoming reservations failed: %w", err)
	}
	return exists, nil
}
